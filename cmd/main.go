package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"textsum/internal/cli"
	"textsum/internal/config"
	"textsum/internal/logging"
	"textsum/internal/summarizer"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).ErrorContext(ctx, "Failed to load config",
			"error", err)

		return 1
	}

	log, logCloser := logging.New(cfg.LogFile, cfg.LogLevel, os.Stderr)
	defer func() {
		if err = logCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()
	slog.SetDefault(log)

	cmd := cli.NewCommand(func(ctx context.Context) summarizer.Engine {
		return cli.NewEngine(ctx, cfg, log)
	}, log, version)

	if err = cmd.ExecuteContext(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to run command",
			"error", err,
			"engine", cfg.Engine)

		return 1
	}

	log.InfoContext(ctx, "Exiting...",
		"engine", cfg.Engine,
		"uptimeSeconds", time.Since(start).Seconds())

	return 0
}
