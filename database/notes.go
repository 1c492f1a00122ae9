package database

import (
	"context"
	"database/sql"
	"errors"
	"sticky-board/models"
)

// ==================== NOTE OPERATIONS ====================

// CreateNote inserts a note and returns the id assigned by SQLite.
// The incoming ID is ignored.
func (r *Repository) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	var id int64
	err := withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO notes (color, text, pos_x, pos_y)
			VALUES (?, ?, ?, ?)
		`, note.Color, note.Text, note.Position.X, note.Position.Y)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetNote retrieves a single note. A missing note is (nil, nil).
func (r *Repository) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	var note models.Note
	err := r.db.QueryRowContext(ctx, `
		SELECT id, color, text, pos_x, pos_y
		FROM notes
		WHERE id = ?
	`, id).Scan(&note.ID, &note.Color, &note.Text, &note.Position.X, &note.Position.Y)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &note, nil
}

// ListNotes returns every note in insertion order.
func (r *Repository) ListNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, color, text, pos_x, pos_y
		FROM notes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Color, &note.Text, &note.Position.X, &note.Position.Y); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// PutNote replaces the note stored under note.ID with note, creating it
// when no such row exists. Every column is overwritten.
func (r *Repository) PutNote(ctx context.Context, note *models.Note) error {
	return withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, color, text, pos_x, pos_y)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				color = excluded.color,
				text = excluded.text,
				pos_x = excluded.pos_x,
				pos_y = excluded.pos_y
		`, note.ID, note.Color, note.Text, note.Position.X, note.Position.Y)
		return err
	})
}

// DeleteNote removes a note. Deleting a missing id is not an error.
func (r *Repository) DeleteNote(ctx context.Context, id int64) error {
	return withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
		return err
	})
}

// ClearNotes removes every note. AUTOINCREMENT keeps ids from being reused.
func (r *Repository) ClearNotes(ctx context.Context) error {
	return withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM notes")
		return err
	})
}
