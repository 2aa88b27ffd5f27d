package migration

import (
	alertdomain "github.com/smallbiznis/riskwatch/internal/alert/domain"
	"github.com/smallbiznis/riskwatch/internal/config"
	riskdomain "github.com/smallbiznis/riskwatch/internal/risk/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite and mysql setups rely on gorm's schema sync.
		return conn.AutoMigrate(
			&riskdomain.RiskSnapshot{},
			&alertdomain.Alert{},
		)
	}),
)
