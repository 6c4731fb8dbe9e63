package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/cafeledger/cafeledger/internal/clock"
	"github.com/cafeledger/cafeledger/internal/config"
	"github.com/cafeledger/cafeledger/internal/events"
	"github.com/cafeledger/cafeledger/internal/logger"
	"github.com/cafeledger/cafeledger/internal/metrics"
	"github.com/cafeledger/cafeledger/internal/migration"
	"github.com/cafeledger/cafeledger/internal/orderflow/service"
	"github.com/cafeledger/cafeledger/internal/server"
	"github.com/cafeledger/cafeledger/internal/store"
	"github.com/cafeledger/cafeledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,
		metrics.Module,

		// Domain wiring
		events.Module,
		store.Module,
		service.Module,
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
