// Package store is the persistence manager for notes. A NoteStore owns one
// SQLite database and runs every operation on a single executor goroutine,
// so calls against the same store are applied one at a time in the order
// they were issued.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sticky-board/database"
	"sticky-board/models"
)

const (
	DefaultTimeout   = 5 * time.Second
	defaultQueueSize = 64
)

type Options struct {
	Driver string
	Path   string
	// Timeout bounds every operation on top of the caller's context.
	// Zero disables it.
	Timeout time.Duration
	Logger  *slog.Logger
}

type NoteStore struct {
	opts   Options
	logger *slog.Logger

	jobs    chan func()
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once

	// owned by the executor goroutine
	db   *database.DB
	repo *database.Repository

	mirrorMu sync.RWMutex
	mirror   []models.Note
}

// New starts the executor. The database is not touched until Initialize.
func New(opts Options) *NoteStore {
	if opts.Driver == "" {
		opts.Driver = database.DriverCGO
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &NoteStore{
		opts:    opts,
		logger:  logger.With("component", "note_store"),
		jobs:    make(chan func(), defaultQueueSize),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *NoteStore) run() {
	defer close(s.stopped)
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.quit:
			// Run whatever was queued before Close so no caller is left waiting.
			for {
				select {
				case job := <-s.jobs:
					job()
				default:
					return
				}
			}
		}
	}
}

// pending tracks one scheduled job.
type pending struct {
	s      *NoteStore
	op     string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan error
}

// schedule queues fn on the executor from the calling goroutine, which keeps
// issue order even for the async variants.
func (s *NoteStore) schedule(ctx context.Context, op string, fn func(ctx context.Context) error) *pending {
	var cancel context.CancelFunc
	if s.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	p := &pending{s: s, op: op, ctx: ctx, cancel: cancel, done: make(chan error, 1)}

	select {
	case <-s.quit:
		p.done <- ErrClosed
		return p
	default:
	}

	select {
	case s.jobs <- func() { p.done <- fn(ctx) }:
	case <-ctx.Done():
		p.done <- ctx.Err()
	case <-s.quit:
		p.done <- ErrClosed
	}
	return p
}

func (p *pending) wait() error {
	defer p.cancel()

	var err error
	select {
	case err = <-p.done:
	case <-p.ctx.Done():
		err = p.ctx.Err()
	case <-p.s.stopped:
		select {
		case err = <-p.done:
		default:
			err = ErrClosed
		}
	}

	if err != nil {
		p.s.logger.Debug("operation failed", "op", p.op, "error", err)
	}
	return wrapErr(p.op, err)
}

// submit runs fn against the open repository on the executor.
func submit[T any](s *NoteStore, ctx context.Context, op string, fn func(context.Context, *database.Repository) (T, error)) *Future[T] {
	var out T
	p := s.schedule(ctx, op, func(ctx context.Context) error {
		if s.repo == nil {
			return ErrNotOpen
		}
		v, err := fn(ctx, s.repo)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return newFuture(func() (T, error) {
		if err := p.wait(); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	})
}

func await[T any](ctx context.Context, op string, f *Future[T]) (T, error) {
	v, err := f.Await(ctx)
	return v, wrapErr(op, err)
}

// ==================== LIFECYCLE ====================

// InitializeAsync opens the database, creating it and the notes table when
// absent. Calling it again on an open store re-checks the schema and
// succeeds.
func (s *NoteStore) InitializeAsync(ctx context.Context) *Future[struct{}] {
	p := s.schedule(ctx, "initialize", s.open)
	return newFuture(func() (struct{}, error) {
		return struct{}{}, p.wait()
	})
}

func (s *NoteStore) Initialize(ctx context.Context) error {
	_, err := await(ctx, "initialize", s.InitializeAsync(ctx))
	return err
}

func (s *NoteStore) open(ctx context.Context) error {
	if s.db == nil {
		db, err := database.New(s.opts.Driver, s.opts.Path)
		if err != nil {
			return err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return err
		}
		s.db = db
		s.repo = database.NewRepository(db)
		s.logger.Info("note store opened", "driver", s.opts.Driver, "path", s.opts.Path)
		return nil
	}
	return s.db.Migrate(ctx)
}

// Close stops the executor after draining queued work and closes the
// database. It is safe to call more than once.
func (s *NoteStore) Close() error {
	var err error
	s.once.Do(func() {
		close(s.quit)
		<-s.stopped
		if s.db != nil {
			err = s.db.Close()
			s.db, s.repo = nil, nil
		}
		s.logger.Info("note store closed")
	})
	return err
}

// ==================== NOTE OPERATIONS ====================

// CreateAsync inserts note and resolves to the id the store assigned.
func (s *NoteStore) CreateAsync(ctx context.Context, note models.Note) *Future[int64] {
	return submit(s, ctx, "create", func(ctx context.Context, repo *database.Repository) (int64, error) {
		if note.ID != 0 {
			return 0, fmt.Errorf("%w: got %d", ErrIDAssigned, note.ID)
		}
		return repo.CreateNote(ctx, &note)
	})
}

func (s *NoteStore) Create(ctx context.Context, note models.Note) (int64, error) {
	return await(ctx, "create", s.CreateAsync(ctx, note))
}

// GetAsync resolves to nil when no note has the id.
func (s *NoteStore) GetAsync(ctx context.Context, id int64) *Future[*models.Note] {
	return submit(s, ctx, "get", func(ctx context.Context, repo *database.Repository) (*models.Note, error) {
		return repo.GetNote(ctx, id)
	})
}

func (s *NoteStore) Get(ctx context.Context, id int64) (*models.Note, error) {
	return await(ctx, "get", s.GetAsync(ctx, id))
}

// GetAllAsync resolves to every note in insertion order and replaces the
// mirror returned by Snapshot.
func (s *NoteStore) GetAllAsync(ctx context.Context) *Future[[]models.Note] {
	return submit(s, ctx, "get_all", func(ctx context.Context, repo *database.Repository) ([]models.Note, error) {
		notes, err := repo.ListNotes(ctx)
		if err != nil {
			return nil, err
		}
		s.setMirror(notes)
		return notes, nil
	})
}

func (s *NoteStore) GetAll(ctx context.Context) ([]models.Note, error) {
	return await(ctx, "get_all", s.GetAllAsync(ctx))
}

// UpdateAsync writes the complete record under note.ID, inserting it when
// the id is unknown. Fields left at their zero value are stored as such.
func (s *NoteStore) UpdateAsync(ctx context.Context, note models.Note) *Future[struct{}] {
	return submit(s, ctx, "update", func(ctx context.Context, repo *database.Repository) (struct{}, error) {
		if note.ID <= 0 {
			return struct{}{}, ErrMissingID
		}
		return struct{}{}, repo.PutNote(ctx, &note)
	})
}

func (s *NoteStore) Update(ctx context.Context, note models.Note) error {
	_, err := await(ctx, "update", s.UpdateAsync(ctx, note))
	return err
}

// DeleteAsync succeeds whether or not the id exists.
func (s *NoteStore) DeleteAsync(ctx context.Context, id int64) *Future[struct{}] {
	return submit(s, ctx, "delete", func(ctx context.Context, repo *database.Repository) (struct{}, error) {
		return struct{}{}, repo.DeleteNote(ctx, id)
	})
}

func (s *NoteStore) Delete(ctx context.Context, id int64) error {
	_, err := await(ctx, "delete", s.DeleteAsync(ctx, id))
	return err
}

func (s *NoteStore) ClearAsync(ctx context.Context) *Future[struct{}] {
	return submit(s, ctx, "clear", func(ctx context.Context, repo *database.Repository) (struct{}, error) {
		return struct{}{}, repo.ClearNotes(ctx)
	})
}

func (s *NoteStore) Clear(ctx context.Context) error {
	_, err := await(ctx, "clear", s.ClearAsync(ctx))
	return err
}

// ==================== MIRROR ====================

func (s *NoteStore) setMirror(notes []models.Note) {
	cp := make([]models.Note, len(notes))
	copy(cp, notes)

	s.mirrorMu.Lock()
	s.mirror = cp
	s.mirrorMu.Unlock()
}

// Snapshot returns a copy of the notes fetched by the latest GetAll. It is
// empty until GetAll has succeeded once.
func (s *NoteStore) Snapshot() []models.Note {
	s.mirrorMu.RLock()
	defer s.mirrorMu.RUnlock()

	cp := make([]models.Note, len(s.mirror))
	copy(cp, s.mirror)
	return cp
}
