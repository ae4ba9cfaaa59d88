package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fs-resource-server/internal/config"
	"fs-resource-server/internal/filesystem"
	"fs-resource-server/internal/lock"
	"fs-resource-server/internal/logging"
	"fs-resource-server/internal/mcp"
	"fs-resource-server/internal/metrics"
	"fs-resource-server/internal/service"
	"fs-resource-server/internal/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}

	logger, err := logging.New(logging.ForTransport(cfg.Transport, cfg.LogLevel, cfg.LogDevelopment))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting filesystem MCP server",
		zap.String("version", mcp.ServerVersion),
		zap.String("transport", cfg.Transport),
		zap.Int("max_file_size_mb", cfg.MaxFileSizeMB),
		zap.Int("timeout_sec", cfg.OperationTimeoutSec),
		zap.Bool("metrics", cfg.MetricsEnabled),
	)

	if cfg.LockFile != "" {
		instanceLock, err := lock.Acquire(cfg.LockFile, cfg.OperationTimeout())
		if err != nil {
			logger.Error("Another instance holds the lock file", zap.String("lock_file", cfg.LockFile), zap.Error(err))
			return 1
		}
		defer func() {
			if err := instanceLock.Release(); err != nil {
				logger.Warn("Failed to release instance lock", zap.Error(err))
			}
		}()
		logger.Info("Instance lock acquired", zap.String("lock_file", cfg.LockFile))
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	fsAdapter := filesystem.NewDefaultFileSystemAdapter(logger.Named("filesystem"))
	svc, err := service.NewDefaultFileQueryService(fsAdapter, cfg, m, logger.Named("service"))
	if err != nil {
		logger.Error("Failed to initialize file query service", zap.Error(err))
		return 1
	}
	processor := mcp.NewMCPProcessor(svc, m, logger.Named("mcp"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverDone := make(chan error, 1)

	switch cfg.Transport {
	case "http":
		httpHandler := transport.NewHTTPHandler(processor, svc, m, logger.Named("http"), cfg.OperationTimeout())
		go func() {
			serverDone <- httpHandler.StartServer(cfg.Addr())
		}()

		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received, stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.OperationTimeout())
			defer cancel()
			if err := httpHandler.Server.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server graceful shutdown failed", zap.Error(err))
				return 1
			}
			<-serverDone
		case err := <-serverDone:
			if err != nil {
				return 1
			}
		}

	case "stdio":
		stdioHandler := transport.NewStdioHandler(processor, logger.Named("stdio"))
		go func() {
			serverDone <- stdioHandler.Start(os.Stdin, os.Stdout)
		}()

		// A blocked stdin read cannot be interrupted, so a signal ends the process
		// without waiting for the handler.
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received")
		case err := <-serverDone:
			if err != nil {
				logger.Error("Stdio handler stopped", zap.Error(err))
				return 1
			}
			logger.Info("Input closed")
		}
	}

	logger.Info("Server stopped")
	return 0
}
