package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"stealthcompany.com/satusehat/internal/config"
	"stealthcompany.com/satusehat/pkg/zerolog_config"
)

func main() {
	cfg := config.Load()

	if err := zerolog_config.Startup(cfg.ElasticsearchURL, "satusehat-cli"); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	app := newApp(cfg)
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
