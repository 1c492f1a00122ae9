package handlers

import (
	"sticky-board/app"
	"sticky-board/drag"
	"sticky-board/models"
	"sticky-board/session"

	"github.com/gofiber/fiber/v2"
)

// OpenViewport creates a viewport showing every stored note
func OpenViewport(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Board.Load(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to load notes", err)
		}

		vp := a.Viewports.Create(notes)
		a.Logger.Info("viewport opened", "viewport_id", vp.ID, "notes", len(notes))

		return created(c, fiber.Map{
			"viewport": vp.ID,
			"widgets":  vp.View.Widgets(),
		})
	}
}

// GetViewport returns the displayed state of a viewport
func GetViewport(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vp := a.Viewports.Get(c.Params("vid"))
		if vp == nil {
			return notFound(c, "Viewport not found")
		}

		return success(c, fiber.Map{
			"viewport": vp.ID,
			"state":    vp.Drag.State().String(),
			"widgets":  vp.View.Widgets(),
		})
	}
}

// CloseViewport forgets a viewport
func CloseViewport(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a.Viewports.Delete(c.Params("vid"))
		return success(c, fiber.Map{"message": "Viewport closed"})
	}
}

// PointerDown starts dragging when the press lands on a note header
func PointerDown(a *app.App) fiber.Handler {
	return pointerHandler(a, func(c *fiber.Ctx, vp *session.Viewport, ev drag.PointerEvent) error {
		started := vp.Drag.PointerDown(ev)
		return respondWidget(c, vp, ev.NoteID, fiber.Map{"dragging": started})
	})
}

// PointerMove moves the dragged note
func PointerMove(a *app.App) fiber.Handler {
	return pointerHandler(a, func(c *fiber.Ctx, vp *session.Viewport, ev drag.PointerEvent) error {
		w, moved := vp.Drag.PointerMove(ev)
		if !moved {
			return success(c, fiber.Map{"state": drag.Idle.String()})
		}
		return success(c, fiber.Map{"state": drag.Dragging.String(), "widget": w})
	})
}

// PointerUp ends the drag and stores the note's new position
func PointerUp(a *app.App) fiber.Handler {
	return pointerHandler(a, func(c *fiber.Ctx, vp *session.Viewport, ev drag.PointerEvent) error {
		note, err := vp.Drag.PointerUp(c.UserContext(), ev)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to save note position", err)
		}
		if note == nil {
			return success(c, fiber.Map{"state": vp.Drag.State().String()})
		}

		// Other viewports still show the position from before the drag.
		a.Viewports.ShowNote(*note)
		return respondWidget(c, vp, note.ID, fiber.Map{"note": note})
	})
}

func pointerHandler(a *app.App, fn func(*fiber.Ctx, *session.Viewport, drag.PointerEvent) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vp := a.Viewports.Get(c.Params("vid"))
		if vp == nil {
			return notFound(c, "Viewport not found")
		}

		var req models.PointerRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationFailed(c, err)
		}

		return fn(c, vp, drag.PointerEvent{
			NoteID: req.NoteID,
			Target: drag.ParseTarget(req.Target),
			X:      req.X,
			Y:      req.Y,
		})
	}
}

func respondWidget(c *fiber.Ctx, vp *session.Viewport, noteID int64, extra fiber.Map) error {
	body := fiber.Map{"state": vp.Drag.State().String()}
	if w, ok := vp.View.Widget(noteID); ok {
		body["widget"] = w
	}
	for k, v := range extra {
		body[k] = v
	}
	return success(c, body)
}
