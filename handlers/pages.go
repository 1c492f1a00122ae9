package handlers

import (
	"sticky-board/app"
	"sticky-board/templates/pages"
	"sticky-board/utils"

	"github.com/gofiber/fiber/v2"
)

// BoardPage renders every stored note
func BoardPage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Board.Load(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to load notes", err)
		}

		// Set HTML content type
		c.Set("Content-Type", "text/html; charset=utf-8")
		// Render with Templ
		return pages.Page("Sticky Board", utils.BoardAssets(a.Logger), pages.Board(notes)).Render(c.UserContext(), c.Response().BodyWriter())
	}
}
