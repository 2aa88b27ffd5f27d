package alert

import (
	"github.com/smallbiznis/riskwatch/internal/alert/repository"
	"github.com/smallbiznis/riskwatch/internal/alert/service"
	"go.uber.org/fx"
)

var Module = fx.Module("alert.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
