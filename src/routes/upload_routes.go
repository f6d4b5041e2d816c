package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/controllers"
)

func UploadRoutes(app *fiber.App, uc *controllers.UploadController, protect fiber.Handler) {
	upload := app.Group("/api/uploads", protect)
	upload.Post("/image", uc.UploadImage)
}
