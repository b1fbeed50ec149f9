package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NewApp builds the fiber app with every route registered.
func NewApp(h *Handler, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "resume-editor",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             8 * 1024 * 1024, // markup may carry an inline profile image
	})
	app.Use(RequestLogger(log))
	Register(app, h)
	return app
}

func Register(app *fiber.App, h *Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Post("/ai/generate", h.Generate)
	api.Get("/users/:userId/drafts", h.ListUserDrafts)

	drafts := api.Group("/drafts")
	drafts.Post("/", h.CreateDraft)
	drafts.Get("/:id", h.GetDraft)
	drafts.Delete("/:id", h.DeleteDraft)
	drafts.Post("/:id/ops", h.ApplyCommand)
	drafts.Patch("/:id/profile", h.UpdateProfile)
	drafts.Put("/:id/visibility/:key", h.SetVisibility)
	drafts.Get("/:id/markup", h.GetMarkup)
	drafts.Put("/:id/markup", h.SaveMarkup)
	drafts.Delete("/:id/markup", h.ClearMarkup)
	drafts.Get("/:id/html", h.RenderHTML)
	drafts.Post("/:id/assist", h.Assist)
	drafts.Post("/:id/exports", h.StartExport)

	api.Get("/exports/:id", h.GetExport)
	api.Get("/exports/:id/file", h.DownloadExport)
}
