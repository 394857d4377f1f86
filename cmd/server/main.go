// Command server runs the personal site: the JSON API under /api, uploaded
// media under /media, the admin dashboard under /admin and the public pages
// everywhere else.
//
// Configuration comes from the environment, optionally preloaded from a
// .env file in the working directory. See internal/config for the variables.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sakif/personal-site/internal/config"
	"github.com/sakif/personal-site/internal/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	srv, err := server.New(context.Background(), cfg, logger, server.Options{})
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT or SIGTERM
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
