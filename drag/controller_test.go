package drag_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"sticky-board/database"
	"sticky-board/drag"
	"sticky-board/models"
	"sticky-board/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of drag.NoteStore
type MockStore struct {
	mock.Mock
}

var _ drag.NoteStore = (*MockStore)(nil)

func (m *MockStore) Get(ctx context.Context, id int64) (*models.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, note models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func setupNoteStore(t *testing.T) *store.NoteStore {
	t.Helper()

	s := store.New(store.Options{
		Driver:  database.DriverPure,
		Path:    filepath.Join(t.TempDir(), "drag.db"),
		Timeout: 2 * time.Second,
	})
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestDragCommitsFinalPosition(t *testing.T) {
	ctx := context.Background()
	s := setupNoteStore(t)

	id, err := s.Create(ctx, models.Note{Color: "#ffeb3b", Text: "drag me", Position: models.Position{X: 50, Y: 50}})
	require.NoError(t, err)
	note, err := s.Get(ctx, id)
	require.NoError(t, err)

	vp := drag.NewViewport()
	vp.Show(*note)
	c := drag.NewController(s, vp, &drag.Stacker{}, nil)

	require.True(t, c.PointerDown(drag.PointerEvent{NoteID: id, Target: drag.TargetHeader, X: 100, Y: 100}))
	assert.Equal(t, drag.Dragging, c.State())

	w, ok := c.PointerMove(drag.PointerEvent{X: 130, Y: 115})
	require.True(t, ok)
	assert.Equal(t, id, w.NoteID)
	assert.Equal(t, drag.Point{X: 80, Y: 65}, w.Position)
	assert.Equal(t, int64(1), w.Z)

	shown, _ := vp.Position(id)
	assert.Equal(t, drag.Point{X: 80, Y: 65}, shown)

	stored, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.Position{X: 50, Y: 50}, stored.Position, "moves are not persisted")

	committed, err := c.PointerUp(ctx, drag.PointerEvent{X: 130, Y: 115})
	require.NoError(t, err)
	require.NotNil(t, committed)
	assert.Equal(t, drag.Idle, c.State())

	stored, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.Note{
		ID:       id,
		Color:    "#ffeb3b",
		Text:     "drag me",
		Position: models.Position{X: 80, Y: 65},
	}, *stored)
}

func TestPointerDownOutsideHeader(t *testing.T) {
	vp := drag.NewViewport()
	vp.Show(models.Note{ID: 1, Color: "red"})
	c := drag.NewController(new(MockStore), vp, &drag.Stacker{}, nil)

	assert.False(t, c.PointerDown(drag.PointerEvent{NoteID: 1, Target: drag.TargetBody}))
	assert.False(t, c.PointerDown(drag.PointerEvent{NoteID: 1, Target: drag.TargetDelete}))
	assert.False(t, c.PointerDown(drag.PointerEvent{NoteID: 2, Target: drag.TargetHeader}), "unknown note")
	assert.Equal(t, drag.Idle, c.State())

	_, moved := c.PointerMove(drag.PointerEvent{X: 10, Y: 10})
	assert.False(t, moved)

	note, err := c.PointerUp(context.Background(), drag.PointerEvent{})
	assert.NoError(t, err)
	assert.Nil(t, note)
}

func TestSecondPointerDownIsIgnored(t *testing.T) {
	vp := drag.NewViewport()
	vp.Show(models.Note{ID: 1, Color: "red"})
	vp.Show(models.Note{ID: 2, Color: "blue"})
	c := drag.NewController(new(MockStore), vp, &drag.Stacker{}, nil)

	require.True(t, c.PointerDown(drag.PointerEvent{NoteID: 1, Target: drag.TargetHeader}))
	assert.False(t, c.PointerDown(drag.PointerEvent{NoteID: 2, Target: drag.TargetHeader}))

	id, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestStackingOrder(t *testing.T) {
	ctx := context.Background()
	ms := new(MockStore)
	ms.On("Get", mock.Anything, mock.Anything).Return(nil, nil)

	vp := drag.NewViewport()
	vp.Show(models.Note{ID: 1, Color: "red"})
	vp.Show(models.Note{ID: 2, Color: "blue"})
	c := drag.NewController(ms, vp, &drag.Stacker{}, nil)

	grab := func(id int64) {
		require.True(t, c.PointerDown(drag.PointerEvent{NoteID: id, Target: drag.TargetHeader}))
		_, err := c.PointerUp(ctx, drag.PointerEvent{})
		require.NoError(t, err)
	}

	grab(1)
	grab(2)
	b, _ := vp.Widget(2)
	grab(1)
	a, _ := vp.Widget(1)

	assert.Greater(t, a.Z, b.Z)

	widgets := vp.Widgets()
	require.Len(t, widgets, 2)
	assert.Equal(t, int64(1), widgets[1].NoteID, "last grabbed note is frontmost")
}

func TestStackerIsSharedAcrossViewports(t *testing.T) {
	stacker := &drag.Stacker{}

	left := drag.NewViewport()
	left.Show(models.Note{ID: 1, Color: "red"})
	right := drag.NewViewport()
	right.Show(models.Note{ID: 1, Color: "red"})

	cl := drag.NewController(new(MockStore), left, stacker, nil)
	cr := drag.NewController(new(MockStore), right, stacker, nil)

	require.True(t, cl.PointerDown(drag.PointerEvent{NoteID: 1, Target: drag.TargetHeader}))
	require.True(t, cr.PointerDown(drag.PointerEvent{NoteID: 1, Target: drag.TargetHeader}))

	l, _ := left.Widget(1)
	r, _ := right.Widget(1)
	assert.NotEqual(t, l.Z, r.Z)
	assert.Equal(t, int64(2), stacker.Current())
}

func TestFailedCommitKeepsDisplayedPosition(t *testing.T) {
	ctx := context.Background()
	note := &models.Note{ID: 3, Color: "green", Text: "x", Position: models.Position{X: 0, Y: 0}}

	ms := new(MockStore)
	ms.On("Get", mock.Anything, int64(3)).Return(note, nil)
	ms.On("Update", mock.Anything, mock.MatchedBy(func(n models.Note) bool {
		return n.ID == 3 && n.Position == models.Position{X: 25, Y: -5} && n.Text == "x"
	})).Return(errors.New("disk full"))

	vp := drag.NewViewport()
	vp.Show(*note)
	c := drag.NewController(ms, vp, &drag.Stacker{}, nil)

	require.True(t, c.PointerDown(drag.PointerEvent{NoteID: 3, Target: drag.TargetHeader, X: 10, Y: 10}))
	c.PointerMove(drag.PointerEvent{X: 35, Y: 5})

	_, err := c.PointerUp(ctx, drag.PointerEvent{X: 35, Y: 5})
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, drag.Idle, c.State())

	shown, _ := vp.Position(3)
	assert.Equal(t, drag.Point{X: 25, Y: -5}, shown)

	ms.AssertExpectations(t)
}

func TestNoteDeletedDuringDrag(t *testing.T) {
	ms := new(MockStore)
	ms.On("Get", mock.Anything, int64(4)).Return(nil, nil)

	vp := drag.NewViewport()
	vp.Show(models.Note{ID: 4, Color: "red"})
	c := drag.NewController(ms, vp, &drag.Stacker{}, nil)

	require.True(t, c.PointerDown(drag.PointerEvent{NoteID: 4, Target: drag.TargetHeader}))

	note, err := c.PointerUp(context.Background(), drag.PointerEvent{})
	assert.NoError(t, err)
	assert.Nil(t, note)
	ms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestParseTarget(t *testing.T) {
	assert.Equal(t, drag.TargetHeader, drag.ParseTarget("header"))
	assert.Equal(t, drag.TargetDelete, drag.ParseTarget("delete"))
	assert.Equal(t, drag.TargetBody, drag.ParseTarget("body"))
	assert.Equal(t, drag.TargetBody, drag.ParseTarget(""))
}
