// Package drag repositions notes with the pointer. A Controller tracks at
// most one drag per viewport; positions are written back to the store only
// when the pointer is released.
package drag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"sticky-board/models"
)

// NoteStore is the part of the persistence manager a drag commit needs.
type NoteStore interface {
	Get(ctx context.Context, id int64) (*models.Note, error)
	Update(ctx context.Context, note models.Note) error
}

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Target is the region of a note a pointer event landed on.
type Target int

const (
	TargetBody Target = iota
	TargetHeader
	TargetDelete
)

func ParseTarget(s string) Target {
	switch s {
	case "header":
		return TargetHeader
	case "delete":
		return TargetDelete
	default:
		return TargetBody
	}
}

type PointerEvent struct {
	NoteID int64
	Target Target
	X, Y   int
}

func (e PointerEvent) point() Point { return Point{X: e.X, Y: e.Y} }

type active struct {
	noteID int64
	origin Point
	start  Point
}

type Controller struct {
	store    NoteStore
	viewport *Viewport
	stacker  *Stacker
	logger   *slog.Logger

	mu   sync.Mutex
	drag *active
}

func NewController(store NoteStore, viewport *Viewport, stacker *Stacker, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:    store,
		viewport: viewport,
		stacker:  stacker,
		logger:   logger.With("component", "drag"),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag == nil {
		return Idle
	}
	return Dragging
}

// Active returns the id of the note being dragged.
func (c *Controller) Active() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag == nil {
		return 0, false
	}
	return c.drag.noteID, true
}

// PointerDown starts a drag when the event hits a note's header and no drag
// is running. It reports whether a drag started.
func (c *Controller) PointerDown(ev PointerEvent) bool {
	if ev.Target != TargetHeader {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag != nil {
		return false
	}

	origin, ok := c.viewport.Position(ev.NoteID)
	if !ok {
		return false
	}

	c.viewport.Raise(ev.NoteID, c.stacker.Next())
	c.drag = &active{noteID: ev.NoteID, origin: origin, start: ev.point()}
	return true
}

// PointerMove moves the dragged note by the pointer's offset from where the
// drag started and returns the moved widget. Nothing is persisted here.
func (c *Controller) PointerMove(ev PointerEvent) (Widget, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return Widget{}, false
	}

	p := Point{
		X: c.drag.origin.X + ev.X - c.drag.start.X,
		Y: c.drag.origin.Y + ev.Y - c.drag.start.Y,
	}
	c.viewport.MoveTo(c.drag.noteID, p)

	w, ok := c.viewport.Widget(c.drag.noteID)
	if !ok {
		w = Widget{NoteID: c.drag.noteID, Position: p}
	}
	return w, true
}

// PointerUp ends the drag and writes the displayed position into the
// note's stored record. The drag is over even when the write fails; the
// displayed position is left as is and the error is logged and returned.
// Returns (nil, nil) when no drag was running or the note no longer exists.
func (c *Controller) PointerUp(ctx context.Context, ev PointerEvent) (*models.Note, error) {
	c.mu.Lock()
	d := c.drag
	c.drag = nil
	c.mu.Unlock()

	if d == nil {
		return nil, nil
	}

	final, ok := c.viewport.Position(d.noteID)
	if !ok {
		return nil, nil
	}

	note, err := c.store.Get(ctx, d.noteID)
	if err != nil {
		c.logger.Error("failed to load note for position commit", "note_id", d.noteID, "error", err)
		return nil, err
	}
	if note == nil {
		c.logger.Warn("note vanished during drag", "note_id", d.noteID)
		return nil, nil
	}

	note.Position = final.Position()
	if err := c.store.Update(ctx, *note); err != nil {
		c.logger.Error("failed to commit note position",
			"note_id", d.noteID,
			"x", final.X,
			"y", final.Y,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug("note position committed", "note_id", d.noteID, "x", final.X, "y", final.Y)
	return note, nil
}
