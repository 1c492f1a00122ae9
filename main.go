package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sticky-board/config"
	"sticky-board/config/setup"
	"syscall"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := setup.NewLogger(cfg)
	slog.SetDefault(logger)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	noteStore, err := setup.InitStore(initCtx, cfg, logger)
	cancelInit()
	if err != nil {
		logger.Error("failed to initialize note store", "error", err)
		os.Exit(1)
	}

	application := setup.InitApp(cfg, noteStore, logger)

	app := setup.NewFiberApp(cfg, logger)
	setup.ApplyMiddleware(app, cfg, logger)
	setup.RegisterRoutes(app, application)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	setup.Shutdown(application, logger)
	logger.Info("server stopped")
}
