// Package main runs the cash ledger API: accounts, transactions with two-tier approval and the audit log.
package main

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/cash-ledger/cmd/httpserver"
	"github.com/go-petr/cash-ledger/db/migration"
	"github.com/go-petr/cash-ledger/internal/middleware"
	"github.com/go-petr/cash-ledger/pkg/configpkg"
	"github.com/go-petr/cash-ledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if config.MigrationEnabled {
		version, err := migration.Up(db)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot migrate database")
		}

		logger.Info().Uint("schema_version", version).Msg("database migrated")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to redis")
	}

	server, err := httpserver.New(db, rdb, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("address", config.ServerAddress).Msg("CASH LEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
