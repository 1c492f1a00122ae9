package setup

import (
	"sticky-board/app"
	"sticky-board/handlers"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {

	fiberApp.Static("/static", "./static", fiber.Static{
		Compress:      true,
		CacheDuration: 24 * time.Hour,
		MaxAge:        86400,
	})

	fiberApp.Get("/", handlers.BoardPage(application))
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := fiberApp.Group("/api")

	notes := api.Group("/notes", writeLimiter())
	notes.Get("/", handlers.GetNotes(application))
	notes.Post("/", handlers.CreateNote(application))
	notes.Delete("/", handlers.ClearNotes(application))
	notes.Get("/:id", handlers.GetNote(application))
	notes.Put("/:id", handlers.ReplaceNote(application))
	notes.Put("/:id/text", handlers.UpdateNoteText(application))
	notes.Delete("/:id", handlers.DeleteNote(application))

	viewports := api.Group("/viewports")
	viewports.Post("/", handlers.OpenViewport(application))
	viewports.Get("/:vid", handlers.GetViewport(application))
	viewports.Delete("/:vid", handlers.CloseViewport(application))
	viewports.Post("/:vid/pointer/down", handlers.PointerDown(application))
	viewports.Post("/:vid/pointer/move", handlers.PointerMove(application))
	viewports.Post("/:vid/pointer/up", handlers.PointerUp(application))
}
