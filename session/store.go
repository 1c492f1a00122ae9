package session

import (
	"log/slog"
	"sticky-board/drag"
	"sticky-board/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 12 * time.Hour

// Viewport is one connected board: its displayed notes and its drag
// controller.
type Viewport struct {
	ID         string
	View       *drag.Viewport
	Drag       *drag.Controller
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// Store keeps the live viewports. Every viewport shares the process-wide
// stacker, so a note raised in any viewport gets a value no other raise has
// used.
type Store struct {
	mu        sync.RWMutex
	viewports map[string]*Viewport

	notes   drag.NoteStore
	stacker *drag.Stacker
	ttl     time.Duration
	logger  *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

func NewStore(notes drag.NoteStore, stacker *drag.Stacker, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		viewports: make(map[string]*Viewport),
		notes:     notes,
		stacker:   stacker,
		ttl:       ttl,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

// Create opens a viewport showing notes at their stored positions.
func (s *Store) Create(notes []models.Note) *Viewport {
	view := drag.NewViewport()
	for _, n := range notes {
		view.Show(n)
	}

	now := time.Now()
	vp := &Viewport{
		ID:         uuid.New().String(),
		View:       view,
		Drag:       drag.NewController(s.notes, view, s.stacker, s.logger),
		CreatedAt:  now,
		LastUsedAt: now,
	}

	s.mu.Lock()
	s.viewports[vp.ID] = vp
	s.mu.Unlock()

	return vp
}

// Get returns the viewport and marks it used, or nil when it is unknown or
// expired.
func (s *Store) Get(id string) *Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()

	vp, exists := s.viewports[id]
	if !exists {
		return nil
	}

	if time.Since(vp.LastUsedAt) > s.ttl {
		delete(s.viewports, id)
		return nil
	}

	vp.LastUsedAt = time.Now()
	return vp
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.viewports, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.viewports)
}

// ShowNote places or refreshes note in every viewport.
func (s *Store) ShowNote(note models.Note) {
	for _, vp := range s.all() {
		vp.View.Show(note)
	}
}

func (s *Store) HideNote(id int64) {
	for _, vp := range s.all() {
		vp.View.Hide(id)
	}
}

func (s *Store) HideAll() {
	for _, vp := range s.all() {
		vp.View.HideAll()
	}
}

func (s *Store) all() []*Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Viewport, 0, len(s.viewports))
	for _, vp := range s.viewports {
		out = append(out, vp)
	}
	return out
}

func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, vp := range s.viewports {
		if time.Since(vp.LastUsedAt) > s.ttl {
			delete(s.viewports, id)
			removed++
		}
	}
	return removed
}

func (s *Store) StartCleanupRoutine(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.CleanupExpired(); n > 0 {
					s.logger.Info("expired viewports removed", "count", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Store) StopCleanupRoutine() {
	s.stopOnce.Do(func() { close(s.stop) })
}
