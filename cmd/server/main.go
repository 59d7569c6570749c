package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/powderline/hakuba-dashboard/internal/api"
	"github.com/powderline/hakuba-dashboard/internal/cache"
	"github.com/powderline/hakuba-dashboard/internal/config"
	"github.com/powderline/hakuba-dashboard/internal/httpx"
	"github.com/powderline/hakuba-dashboard/internal/observability"
	"github.com/powderline/hakuba-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	metrics := observability.NewMetrics()
	fetcher := httpx.NewFetcher(cfg.UserAgent)
	snapshots := cache.New(cfg.FetchTTL)

	svc := pipeline.New(fetcher, snapshots, metrics, cfg)
	svc.Start(context.Background())

	srv := api.NewServer(svc, metrics)

	slog.Info("starting server",
		"port", cfg.Port,
		"source_url", cfg.SourceURL,
		"fetch_ttl", cfg.FetchTTL.String(),
		"merge_pair", cfg.MergedName(),
	)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
