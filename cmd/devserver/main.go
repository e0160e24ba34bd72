package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"tekmakon-site/internal/app"
	"tekmakon-site/internal/config"
	"tekmakon-site/internal/devserver"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// .env is optional; the real environment wins over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("failed to load .env", "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	h, err := app.NewHandler(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	r, err := devserver.New(h, devserver.Options{
		MaxBodyBytes: cfg.MaxBodyBytes,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("failed to create dev server", "err", err)
		os.Exit(1)
	}

	logger.Info("dev server listening", "addr", cfg.DevAddr)
	if err := r.Run(cfg.DevAddr); err != nil {
		logger.Error("dev server stopped", "err", err)
		os.Exit(1)
	}
}
