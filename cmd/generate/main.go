package main

import (
	"context"

	"jp-municipalities/internal/config"
	"jp-municipalities/internal/logger"
	"jp-municipalities/internal/pipeline"

	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(config.LogLevel, config.LogFormat)

	result, err := pipeline.New(config).Generate(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot generate municipalities")
	}

	log.Info().
		Int("municipalities", len(result.Municipalities)).
		Int("diagnostics", len(result.Diagnostics)).
		Str("output", config.OutputPath).
		Msg("done")
}
