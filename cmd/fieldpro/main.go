package main

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/config"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/logger"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/migration"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/server"
	"github.com/C-P-WAZARIYO/Field-Pro/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
