package dolibarr

import "go.uber.org/fx"

var Module = fx.Module("dolibarr",
	fx.Provide(New),
)
