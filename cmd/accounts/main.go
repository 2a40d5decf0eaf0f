package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/hanko-accounts/internal/accounts/config"
	"finitefield.org/hanko-accounts/internal/accounts/httpserver"
	"finitefield.org/hanko-accounts/internal/accounts/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	srv := httpserver.New(httpserver.Config{
		Address:      cfg.Server.Address,
		Environment:  cfg.Server.Environment,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		SubmitDelay:  cfg.Forms.SubmitDelay,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("accounts server listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("environment", cfg.Server.Environment),
		zap.Duration("submit_delay", cfg.Forms.SubmitDelay),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		cancel()
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("accounts server stopped")
}
