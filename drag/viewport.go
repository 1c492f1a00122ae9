package drag

import (
	"sort"
	"sync"
	"sync/atomic"

	"sticky-board/models"
)

// Point is a pixel coordinate in viewport space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func pointOf(p models.Position) Point { return Point{X: p.X, Y: p.Y} }

func (p Point) Position() models.Position { return models.Position{X: p.X, Y: p.Y} }

// Stacker hands out stacking values. Values only grow and are never reused,
// so the note raised last is always frontmost.
type Stacker struct {
	n atomic.Int64
}

func (s *Stacker) Next() int64 { return s.n.Add(1) }

// Current returns the last value handed out, 0 before the first raise.
func (s *Stacker) Current() int64 { return s.n.Load() }

// Widget is what a viewport shows for one note.
type Widget struct {
	NoteID   int64 `json:"note_id"`
	Position Point `json:"position"`
	Z        int64 `json:"z"`
}

// Viewport holds the displayed position and stacking value of every note on
// one board. Displayed positions may run ahead of the stored ones while a
// drag is in progress or after a failed commit.
type Viewport struct {
	mu      sync.RWMutex
	widgets map[int64]*Widget
}

func NewViewport() *Viewport {
	return &Viewport{widgets: make(map[int64]*Widget)}
}

// Show places note at its stored position. A note already on screen keeps
// its stacking value.
func (v *Viewport) Show(note models.Note) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if w, ok := v.widgets[note.ID]; ok {
		w.Position = pointOf(note.Position)
		return
	}
	v.widgets[note.ID] = &Widget{NoteID: note.ID, Position: pointOf(note.Position)}
}

func (v *Viewport) Hide(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.widgets, id)
}

func (v *Viewport) HideAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.widgets = make(map[int64]*Widget)
}

func (v *Viewport) Widget(id int64) (Widget, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	w, ok := v.widgets[id]
	if !ok {
		return Widget{}, false
	}
	return *w, true
}

func (v *Viewport) Position(id int64) (Point, bool) {
	w, ok := v.Widget(id)
	return w.Position, ok
}

func (v *Viewport) MoveTo(id int64, p Point) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	w, ok := v.widgets[id]
	if !ok {
		return false
	}
	w.Position = p
	return true
}

func (v *Viewport) Raise(id int64, z int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	w, ok := v.widgets[id]
	if !ok {
		return false
	}
	w.Z = z
	return true
}

// Widgets returns every widget back to front, ties broken by note id.
func (v *Viewport) Widgets() []Widget {
	v.mu.RLock()
	out := make([]Widget, 0, len(v.widgets))
	for _, w := range v.widgets {
		out = append(out, *w)
	}
	v.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].NoteID < out[j].NoteID
	})
	return out
}
