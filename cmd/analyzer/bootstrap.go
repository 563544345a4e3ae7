package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"backtest-analyzer/internal/analyzer"
	"backtest-analyzer/internal/analyzer/analyzerobs"
	"backtest-analyzer/internal/interfaces"
	"backtest-analyzer/internal/logger"
	"backtest-analyzer/internal/reporter"
	"backtest-analyzer/internal/store"
	"backtest-analyzer/internal/trace"
)

// initializeSystem loads .env and initializes logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// shutdownSystem flushes spans and buffered logs
func shutdownSystem() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown tracer: %v\n", err)
	}
	logger.Shutdown()
}

// loadConfig loads the config file, falling back to defaults when it does not exist
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, found, err := store.LoadConfigOrDefault(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	if !found {
		logger.Warn(ctx, "Config file not found, using defaults", "path", path)
	}
	return cfg, nil
}

// initializeAnalyzer builds the report analyzer with observability
func initializeAnalyzer(cfg *store.Config) interfaces.ReportAnalyzer {
	return analyzerobs.Wrap(analyzer.New(cfg))
}

// compressOldReports gzips saved reports past the configured retention
func compressOldReports(ctx context.Context, rep *reporter.Reporter, retentionDays int) {
	n, err := rep.CompressOlder(retentionDays)
	if err != nil {
		logger.Warn(ctx, "Failed to compress old reports", "error", err)
		return
	}
	if n > 0 {
		logger.Info(ctx, "Compressed old reports", "count", n, "retention_days", retentionDays)
	}
}
