package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/riskwatch/internal/alert"
	"github.com/smallbiznis/riskwatch/internal/clock"
	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/smallbiznis/riskwatch/internal/dolibarr"
	"github.com/smallbiznis/riskwatch/internal/migration"
	"github.com/smallbiznis/riskwatch/internal/notifier"
	"github.com/smallbiznis/riskwatch/internal/observability"
	"github.com/smallbiznis/riskwatch/internal/providers/email"
	"github.com/smallbiznis/riskwatch/internal/risk"
	"github.com/smallbiznis/riskwatch/internal/server"
	"github.com/smallbiznis/riskwatch/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,

		dolibarr.Module,
		email.Module,
		notifier.Module,
		risk.Module,
		alert.Module,

		server.Module,
	)

	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
