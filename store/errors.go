package store

import (
	"errors"
	"fmt"

	"sticky-board/database"
)

var (
	ErrNotOpen      = errors.New("note store is not initialized")
	ErrClosed       = errors.New("note store is closed")
	ErrIDAssigned   = errors.New("note id is assigned by the store")
	ErrMissingID    = errors.New("note id is required")
	ErrSchemaTooNew = database.ErrSchemaTooNew
)

// StorageError is returned by every NoteStore operation that fails. Err is
// the engine's error, a context error on timeout, or one of the sentinels
// above.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("note store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
