package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/akave-ai/ledgerdesk/internal/config"
	"github.com/akave-ai/ledgerdesk/internal/logger"
	"github.com/akave-ai/ledgerdesk/internal/observability"
	"github.com/akave-ai/ledgerdesk/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.Observability)

	nr, err := observability.NewApplication(cfg.Observability, log)
	if err != nil {
		log.Fatal().Err(err).Msg("new relic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log, nr)
	if err := srv.Start(ctx); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
