package validator

import (
	"strings"
	"testing"

	"sticky-board/models"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CreateNote(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.CreateNoteRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid hex color",
			req:       models.CreateNoteRequest{Color: "#ffeb3b"},
			wantError: false,
		},
		{
			name:      "Valid short hex color",
			req:       models.CreateNoteRequest{Color: "#fa0"},
			wantError: false,
		},
		{
			name:      "Valid rgb color",
			req:       models.CreateNoteRequest{Color: "rgb(255, 235, 59)", Text: "hi"},
			wantError: false,
		},
		{
			name:      "Valid hsla color",
			req:       models.CreateNoteRequest{Color: "hsla(54, 100%, 62%, 0.5)"},
			wantError: false,
		},
		{
			name:      "Valid named color",
			req:       models.CreateNoteRequest{Color: "lightyellow"},
			wantError: false,
		},
		{
			name:      "Missing color",
			req:       models.CreateNoteRequest{Text: "orphan"},
			wantError: true,
			errorMsg:  "color is required",
		},
		{
			name:      "Bad hex length",
			req:       models.CreateNoteRequest{Color: "#ffeb3"},
			wantError: true,
			errorMsg:  "color must be a CSS color",
		},
		{
			name:      "Script injection",
			req:       models.CreateNoteRequest{Color: "red;background:url(x)"},
			wantError: true,
			errorMsg:  "color must be a CSS color",
		},
		{
			name:      "Text too long",
			req:       models.CreateNoteRequest{Color: "red", Text: strings.Repeat("a", 10001)},
			wantError: true,
			errorMsg:  "text must be at most 10000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Pointer(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.PointerRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Header press",
			req:       models.PointerRequest{NoteID: 1, Target: "header", X: 10, Y: 10},
			wantError: false,
		},
		{
			name:      "Move without target",
			req:       models.PointerRequest{X: -5, Y: 300},
			wantError: false,
		},
		{
			name:      "Unknown target",
			req:       models.PointerRequest{NoteID: 1, Target: "footer"},
			wantError: true,
			errorMsg:  "target must be one of: header body delete",
		},
		{
			name:      "Negative note id",
			req:       models.PointerRequest{NoteID: -1},
			wantError: true,
			errorMsg:  "note_id must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "color", Message: "color is required", Tag: "required"},
		{Field: "text", Message: "text must be at most 10000 characters", Tag: "max"},
	}

	errMsg := errs.Error()
	assert.Contains(t, errMsg, "color is required")
	assert.Contains(t, errMsg, "text must be at most 10000 characters")
}
