package models

// Position is a note's top-left pixel offset in the viewport.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Note is the only persisted entity. ID is assigned by the store on create.
type Note struct {
	ID       int64    `json:"id" yaml:"id"`
	Color    string   `json:"color" yaml:"color"`
	Text     string   `json:"text" yaml:"text"`
	Position Position `json:"position" yaml:"position"`
}

type CreateNoteRequest struct {
	Color string `json:"color" validate:"required,max=64,csscolor"`
	Text  string `json:"text" validate:"max=10000"`
}

// UpdateNoteRequest carries a complete record. Omitted fields are written
// as their zero values.
type UpdateNoteRequest struct {
	Color    string   `json:"color" validate:"required,max=64,csscolor"`
	Text     string   `json:"text" validate:"max=10000"`
	Position Position `json:"position"`
}

type UpdateTextRequest struct {
	Text string `json:"text" validate:"max=10000"`
}

type PointerRequest struct {
	NoteID int64  `json:"note_id" validate:"gte=0"`
	Target string `json:"target" validate:"omitempty,oneof=header body delete"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}
