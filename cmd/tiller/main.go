package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tiller/internal/config"
	apphttp "tiller/internal/http"
	ports "tiller/internal/ledger"
	gsheet "tiller/internal/ledger/google"
	mem "tiller/internal/ledger/memory"
)

func main() {
	// Load .env file if present (ignore errors - env vars take precedence)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var src ports.Source
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.New(context.Background(), gsheet.Config{
			SpreadsheetID:     cfg.SpreadsheetID,
			CredentialsJSON:   cfg.CredentialsJSON,
			CredentialsFile:   cfg.CredentialsFile,
			TransactionsRange: cfg.TransactionsRange,
			CategoriesRange:   cfg.CategoriesRange,
			BalancesRange:     cfg.BalancesRange,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err, "backend", cfg.DataBackend)
			os.Exit(1)
		}
		src = cli
		logger.Info("Initialized Google Sheets backend", "backend", cfg.DataBackend)
	default:
		store, err := mem.NewFromFiles(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to seed memory backend", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		src = store
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend, "dir", cfg.DataDir)
	}

	srv := apphttp.NewServer(":"+cfg.Port, src)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting tiller server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
