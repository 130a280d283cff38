package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/matchpulse/matchpulse-api/internal/app"
	"github.com/matchpulse/matchpulse-api/internal/config"
	"github.com/matchpulse/matchpulse-api/internal/observability"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
)

// One-shot ingestion sweep, same wiring as the HTTP job endpoint. Meant to be
// run from cron or a scheduler; prints the sweep summary as JSON on stdout.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	svcs, err := app.BuildServices(cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := svcs.Ingest.Run(ctx)
	svcs.Matches.InvalidateListings(ctx)

	if err := svcs.Close(); err != nil {
		logger.Error("close services", "error", err)
	}
	if err := shutdownUptrace(context.Background()); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	out, err := sonic.MarshalString(result)
	if err != nil {
		logger.Error("encode summary", "error", err)
		os.Exit(1)
	}
	fmt.Println(out)

	if !result.Success {
		os.Exit(1)
	}
}
