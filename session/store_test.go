package session

import (
	"context"
	"sticky-board/drag"
	"sticky-board/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopStore struct{}

func (nopStore) Get(ctx context.Context, id int64) (*models.Note, error) { return nil, nil }
func (nopStore) Update(ctx context.Context, note models.Note) error     { return nil }

func TestViewportLifecycle(t *testing.T) {
	s := NewStore(nopStore{}, &drag.Stacker{}, time.Hour, nil)

	notes := []models.Note{
		{ID: 1, Color: "red", Position: models.Position{X: 10, Y: 20}},
		{ID: 2, Color: "blue"},
	}

	vp := s.Create(notes)
	require.NotEmpty(t, vp.ID)
	assert.Equal(t, 1, s.Len())

	t.Run("Notes are shown at stored positions", func(t *testing.T) {
		p, ok := vp.View.Position(1)
		require.True(t, ok)
		assert.Equal(t, drag.Point{X: 10, Y: 20}, p)
	})

	t.Run("Get returns the same viewport", func(t *testing.T) {
		assert.Same(t, vp, s.Get(vp.ID))
		assert.Nil(t, s.Get("unknown"))
	})

	t.Run("Broadcasts reach every viewport", func(t *testing.T) {
		other := s.Create(nil)

		s.ShowNote(models.Note{ID: 3, Color: "green", Position: models.Position{X: 5, Y: 5}})
		_, ok := other.View.Position(3)
		assert.True(t, ok)
		_, ok = vp.View.Position(3)
		assert.True(t, ok)

		s.HideNote(3)
		_, ok = other.View.Position(3)
		assert.False(t, ok)

		s.HideAll()
		assert.Empty(t, vp.View.Widgets())
	})

	t.Run("Delete removes the viewport", func(t *testing.T) {
		s.Delete(vp.ID)
		assert.Nil(t, s.Get(vp.ID))
	})
}

func TestCleanupExpired(t *testing.T) {
	s := NewStore(nopStore{}, &drag.Stacker{}, time.Minute, nil)

	stale := s.Create(nil)
	fresh := s.Create(nil)

	s.mu.Lock()
	stale.LastUsedAt = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	assert.Equal(t, 1, s.CleanupExpired())
	assert.Nil(t, s.Get(stale.ID))
	assert.NotNil(t, s.Get(fresh.ID))
}

func TestCleanupRoutineStops(t *testing.T) {
	s := NewStore(nopStore{}, &drag.Stacker{}, time.Minute, nil)
	s.StartCleanupRoutine(10 * time.Millisecond)
	s.StopCleanupRoutine()
	s.StopCleanupRoutine()
}
