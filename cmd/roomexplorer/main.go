// Package main is the terminal room explorer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/portalrooms/internal/game"
	"github.com/samdwyer/portalrooms/internal/logger"
	"github.com/samdwyer/portalrooms/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "roomexplorer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; variables may be set directly
	envErr := godotenv.Load()

	cfg, err := game.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal belongs to tcell, so logs only go to a file.
	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
		if err := logger.Configure(cfg.LogLevel, logFile); err != nil {
			return err
		}
	} else if err := logger.Configure(cfg.LogLevel, nil); err != nil {
		return err
	}
	if envErr != nil {
		logger.Log.WithError(envErr).Debug(".env file not loaded")
	}

	ctx := context.Background()
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, "roomexplorer")
		if err != nil {
			logger.Log.WithError(err).Warn("telemetry setup failed")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Log.WithError(err).Warn("telemetry shutdown failed")
				}
			}()
		}
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize explorer: %w", err)
	}
	return g.Run(ctx)
}
