package handlers

import (
	"errors"
	"sticky-board/app"
	"sticky-board/models"
	"sticky-board/services"

	"github.com/gofiber/fiber/v2"
)

// GetNotes returns every note on the board
func GetNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Board.Load(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// GetNote returns a single note
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		note, err := a.Board.Get(c.UserContext(), id)
		if errors.Is(err, services.ErrNoteNotFound) {
			return notFound(c, "Note not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote adds a note at the board origin
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		note, err := a.Board.AddNote(c.UserContext(), req.Color, req.Text)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to add note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// ReplaceNote stores the complete record sent by the client
func ReplaceNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		note := models.Note{
			ID:       id,
			Color:    req.Color,
			Text:     req.Text,
			Position: req.Position,
		}
		if err := a.Board.ReplaceNote(c.UserContext(), note); err != nil {
			return serverErrorWithDetails(c, "Failed to save note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// UpdateNoteText stores edited text for a note
func UpdateNoteText(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		var req models.UpdateTextRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		note, err := a.Board.EditText(c.UserContext(), id, req.Text)
		if errors.Is(err, services.ErrNoteNotFound) {
			return notFound(c, "Note not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update note text", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note; deleting a missing note succeeds
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		if err := a.Board.RemoveNote(c.UserContext(), id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete note", err)
		}

		return success(c, fiber.Map{
			"message": "Note deleted successfully",
		})
	}
}

// ClearNotes removes every note
func ClearNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Board.Clear(c.UserContext()); err != nil {
			return serverErrorWithDetails(c, "Failed to clear notes", err)
		}

		return success(c, fiber.Map{
			"message": "All notes deleted",
		})
	}
}
