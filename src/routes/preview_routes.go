package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/controllers"
)

func PreviewRoutes(app *fiber.App, pc *controllers.PreviewController) {
	// Public: the rendered preview is the user-facing portfolio page
	app.Get("/api/preview/:userId", pc.GetPreview)
}
