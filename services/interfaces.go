package services

import (
	"context"
	"sticky-board/models"
)

// NoteStore defines the persistence operations the board needs
type NoteStore interface {
	Create(ctx context.Context, note models.Note) (int64, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	GetAll(ctx context.Context) ([]models.Note, error)
	Update(ctx context.Context, note models.Note) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// Viewports receives every change to the set of notes so open boards can
// redraw
type Viewports interface {
	ShowNote(note models.Note)
	HideNote(id int64)
	HideAll()
}
