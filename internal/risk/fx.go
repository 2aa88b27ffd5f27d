package risk

import (
	"github.com/smallbiznis/riskwatch/internal/risk/repository"
	"github.com/smallbiznis/riskwatch/internal/risk/service"
	"go.uber.org/fx"
)

var Module = fx.Module("risk.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
