package main

import (
	"roombooking/config"
	"roombooking/di"
	"roombooking/helper"
	"roombooking/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("auto migration failed")
		}
	}

	worker := di.InitializeWorker()
	worker.Serve()
}
