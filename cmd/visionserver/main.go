// Package main serves room engine sessions over websockets.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/portalrooms/internal/game"
	"github.com/samdwyer/portalrooms/internal/gamedata"
	"github.com/samdwyer/portalrooms/internal/logger"
	"github.com/samdwyer/portalrooms/internal/telemetry"
	"github.com/samdwyer/portalrooms/internal/ws"
)

// defaultHalfResolution is used for look intents that leave it unset.
const defaultHalfResolution = 40

func main() {
	envErr := godotenv.Load()

	cfg, err := game.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid configuration")
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		logger.Log.WithError(err).Fatal("open log file")
	}
	if logFile != nil {
		defer logFile.Close()
		if err := logger.Configure(cfg.LogLevel, logFile); err != nil {
			logger.Log.WithError(err).Fatal("configure logging")
		}
	} else if err := logger.Configure(cfg.LogLevel, os.Stderr); err != nil {
		logger.Log.WithError(err).Fatal("configure logging")
	}
	if envErr != nil {
		logger.Log.WithError(envErr).Debug(".env file not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, "visionserver")
		if err != nil {
			logger.Log.WithError(err).Warn("telemetry setup failed")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Log.WithError(err).Warn("telemetry shutdown failed")
				}
			}()
		}
	}

	catalog, err := gamedata.LoadRooms(ctx, cfg.Templates)
	if err != nil {
		logger.Log.WithError(err).Fatal("load room templates")
	}

	server := ws.NewServer(catalog.Factory, ws.ViewDefaults{
		HalfResolution: defaultHalfResolution,
		FOV:            cfg.FOV,
		Range:          cfg.Range,
	}, cfg.Seed)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		server.Shutdown("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Log.WithFields(logrus.Fields{
		"addr":      cfg.Addr,
		"templates": catalog.Factory.TemplateCount(),
	}).Info("vision server listening")

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
