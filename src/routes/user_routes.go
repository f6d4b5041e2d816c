package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/controllers"
)

func UserRoutes(app *fiber.App, uc *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/users")
	user.Post("/register", uc.Register)
	user.Post("/login", uc.Login)
	user.Get("/", protect, uc.GetProfile)
	user.Put("/", protect, uc.UpdateProfile)
	user.Delete("/", protect, uc.DeleteAccount)
}
