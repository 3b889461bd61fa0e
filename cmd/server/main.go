package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/olive-branch-content-api/internal/cli"
	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		// Logger settings come from the configuration, so fall back to defaults here
		log := logger.New(config.LogConfig{}, "")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg, log, cli.ServeOptions{Migrate: true}); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
