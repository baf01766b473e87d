package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Anthonytesla02/AxelTycoon/internal/advisor"
	"github.com/Anthonytesla02/AxelTycoon/internal/api"
	"github.com/Anthonytesla02/AxelTycoon/internal/config"
	"github.com/Anthonytesla02/AxelTycoon/internal/game"
	"github.com/Anthonytesla02/AxelTycoon/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var games store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		games = pg
		logger.Info("using postgres store")
	} else {
		games = store.NewMemory()
		logger.Warn("DATABASE_URL not set, games are kept in memory")
	}
	defer games.Close()

	mistral := advisor.New(cfg.MistralAPIKey, cfg.MistralModel, logger)
	if mistral.Enabled() {
		logger.Info("advisor enabled", "model", cfg.MistralModel)
	} else {
		logger.Info("advisor disabled, using fallback rival policy and canned news")
	}

	engine := game.NewEngine(mistral, logger)

	server := api.New(cfg, logger, engine, games)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("tycoon api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
