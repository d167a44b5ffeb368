package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/kiranapos/kirana/internal/config"
	"github.com/kiranapos/kirana/internal/migration"
	"github.com/kiranapos/kirana/internal/seed"
	"github.com/kiranapos/kirana/internal/server"
	"github.com/kiranapos/kirana/pkg/db"
	"github.com/kiranapos/kirana/pkg/log"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		seed.Module,

		// HTTP API plus every domain module it serves
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
