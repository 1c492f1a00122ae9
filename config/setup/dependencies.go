package setup

import (
	"context"
	"log/slog"
	"sticky-board/app"
	"sticky-board/config"
	"sticky-board/drag"
	"sticky-board/session"
	"sticky-board/store"
	"time"
)

// InitStore opens the note store and provisions its schema
func InitStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.NoteStore, error) {
	noteStore := store.New(store.Options{
		Driver:  cfg.DBDriver,
		Path:    cfg.DBPath,
		Timeout: cfg.StoreTimeout,
		Logger:  logger,
	})

	if err := noteStore.Initialize(ctx); err != nil {
		noteStore.Close()
		return nil, err
	}

	logger.Info("note store initialized", "path", cfg.DBPath, "driver", cfg.DBDriver)
	return noteStore, nil
}

// InitApp initializes the application with all dependencies
func InitApp(cfg *config.Config, noteStore *store.NoteStore, logger *slog.Logger) *app.App {
	// One stacker for the whole process so stacking values are never reused
	stacker := &drag.Stacker{}

	viewports := session.NewStore(noteStore, stacker, cfg.ViewportTTL, logger)
	viewports.StartCleanupRoutine(time.Hour)
	logger.Info("viewport cleanup routine started")

	application := app.New(noteStore, viewports, logger)
	logger.Info("application initialized with dependency injection")

	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(application *app.App, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if application.Viewports != nil {
		application.Viewports.StopCleanupRoutine()
		logger.Info("viewport cleanup stopped")
	}

	if application.Store != nil {
		if err := application.Store.Close(); err != nil {
			logger.Error("failed to close note store", "error", err)
		}
	}
}
