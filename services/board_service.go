package services

import (
	"context"
	"log/slog"
	"sticky-board/models"
)

// BoardService handles the board's note actions
type BoardService struct {
	store     NoteStore
	viewports Viewports
	logger    *slog.Logger
}

// NewBoardService creates a new board service. viewports may be nil.
func NewBoardService(store NoteStore, viewports Viewports, logger *slog.Logger) *BoardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardService{
		store:     store,
		viewports: viewports,
		logger:    logger,
	}
}

// Load fetches every note for rendering
func (bs *BoardService) Load(ctx context.Context) ([]models.Note, error) {
	notes, err := bs.store.GetAll(ctx)
	if err != nil {
		bs.logger.Error("failed to load notes", "error", err)
		return nil, err
	}
	return notes, nil
}

// Get retrieves a single note
func (bs *BoardService) Get(ctx context.Context, id int64) (*models.Note, error) {
	note, err := bs.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// AddNote creates a note at the board origin
func (bs *BoardService) AddNote(ctx context.Context, color, text string) (*models.Note, error) {
	note := models.Note{
		Color:    color,
		Text:     text,
		Position: models.Position{X: 0, Y: 0},
	}

	id, err := bs.store.Create(ctx, note)
	if err != nil {
		bs.logger.Error("failed to add note", "color", color, "error", err)
		return nil, err
	}
	note.ID = id

	if bs.viewports != nil {
		bs.viewports.ShowNote(note)
	}
	return &note, nil
}

// ReplaceNote writes a complete record under note.ID
func (bs *BoardService) ReplaceNote(ctx context.Context, note models.Note) error {
	if err := bs.store.Update(ctx, note); err != nil {
		bs.logger.Error("failed to replace note", "note_id", note.ID, "error", err)
		return err
	}

	if bs.viewports != nil {
		bs.viewports.ShowNote(note)
	}
	return nil
}

// EditText stores new text for a note, keeping its other fields as stored
func (bs *BoardService) EditText(ctx context.Context, id int64, text string) (*models.Note, error) {
	note, err := bs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	note.Text = text
	if err := bs.store.Update(ctx, *note); err != nil {
		bs.logger.Error("failed to update note text", "note_id", id, "error", err)
		return nil, err
	}
	return note, nil
}

// RemoveNote deletes a note; removing a missing note succeeds
func (bs *BoardService) RemoveNote(ctx context.Context, id int64) error {
	if err := bs.store.Delete(ctx, id); err != nil {
		bs.logger.Error("failed to delete note", "note_id", id, "error", err)
		return err
	}

	if bs.viewports != nil {
		bs.viewports.HideNote(id)
	}
	return nil
}

// Clear removes every note from the board
func (bs *BoardService) Clear(ctx context.Context) error {
	if err := bs.store.Clear(ctx); err != nil {
		bs.logger.Error("failed to clear notes", "error", err)
		return err
	}

	if bs.viewports != nil {
		bs.viewports.HideAll()
	}
	return nil
}
