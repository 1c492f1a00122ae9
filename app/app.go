package app

import (
	"log/slog"
	"sticky-board/services"
	"sticky-board/session"
	"sticky-board/store"
	"sticky-board/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store     *store.NoteStore
	Board     *services.BoardService
	Viewports *session.Store
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(noteStore *store.NoteStore, viewports *session.Store, logger *slog.Logger) *App {
	return &App{
		Store:     noteStore,
		Board:     services.NewBoardService(noteStore, viewports, logger),
		Viewports: viewports,
		Validator: validator.New(),
		Logger:    logger,
	}
}
