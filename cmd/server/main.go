package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/config"
	"github.com/haikalvidya/lmnr/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize application with Wire-generated dependency injection
	app, err := InitializeApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer app.Cleanup()
	defer app.Logger.Sync()

	// Initialize request validator
	validator.Init()

	app.Logger.Info("starting evaluation score server",
		zap.String("environment", cfg.Server.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	// Start background services (batch writer)
	app.Start()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		app.Logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Fatal("HTTP server forced shutdown", zap.Error(err))
	}

	// Stop batch writer and flush remaining scores
	if batchWriter := app.GetBatchWriter(); batchWriter != nil {
		app.Logger.Info("stopping score batch writer...")
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := batchWriter.Stop(flushCtx); err != nil {
			app.Logger.Error("failed to stop batch writer cleanly", zap.Error(err))
		}
		flushCancel()

		metrics := batchWriter.GetMetrics()
		app.Logger.Info("score batch writer final metrics",
			zap.Int64("scores_written", metrics.ScoresWritten),
			zap.Int64("flush_count", metrics.FlushCount),
			zap.Int64("error_count", metrics.ErrorCount),
		)
	}

	app.Logger.Info("server stopped")
}
