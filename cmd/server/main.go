package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"blogapi/internal/api"
	"blogapi/internal/config"
	"blogapi/internal/engine"
	"blogapi/internal/model"
	"blogapi/internal/storage"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger = logger.Level(cfg.LogLevel)

	seed, err := loadSeed(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("load seed posts")
	}
	store := engine.NewMemoryStore(seed...)
	logger.Info().Int("posts", store.Len()).Str("seed_file", cfg.SeedFile).Msg("store ready")

	srv := api.NewServer(store, api.ServerOptions{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
		TrustProxy:      cfg.TrustProxy,
	})
	errCh := srv.Start()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Fatal().Err(err).Msg("server failed")
	}

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	logger.Info().Msg("stopped")
}

func loadSeed(cfg config.Config) ([]model.Post, error) {
	switch {
	case cfg.NoSeed:
		return nil, nil
	case cfg.SeedFile != "":
		return storage.LoadSeed(cfg.SeedFile)
	default:
		return storage.DefaultSeed(), nil
	}
}
