package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/minhtran/catalog-admin/internal/catalog"
	"github.com/minhtran/catalog-admin/internal/config"
	"github.com/minhtran/catalog-admin/internal/logging"
	"github.com/minhtran/catalog-admin/internal/remote"
	"github.com/minhtran/catalog-admin/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"catalog_api", cfg.CatalogAPI.BaseURL,
		"page_size", cfg.View.PageSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	client := remote.NewClient(remote.Options{
		BaseURL: cfg.CatalogAPI.BaseURL,
		Timeout: cfg.CatalogAPI.Timeout,
		Debug:   cfg.CatalogAPI.Debug,
	})

	dash := catalog.NewDashboard(client, cfg.View.PageSize)

	// Initial catalog load. A products failure is not fatal to the
	// process: the server still comes up and serves the error state,
	// and POST /api/reload retries on user request.
	if err := dash.Load(context.Background()); err != nil {
		slog.Error("initial catalog load failed", "error", err)
	} else {
		view, _ := dash.View()
		slog.Info("catalog loaded",
			"products", view.CatalogTotal,
			"categories", len(dash.Categories()),
		)
	}

	server := web.NewServer(dash, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
