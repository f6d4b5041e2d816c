package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/controllers"
)

func PortfolioRoutes(app *fiber.App, pc *controllers.PortfolioController, protect fiber.Handler) {
	portfolio := app.Group("/api/portfolios", protect)
	portfolio.Post("/", pc.Create)
	portfolio.Get("/", pc.Get)
	portfolio.Put("/", pc.Update)
	portfolio.Delete("/", pc.Delete)

	// Append a single entry to one of the child lists
	portfolio.Post("/education", pc.AddEducation)
	portfolio.Post("/experience", pc.AddExperience)
	portfolio.Post("/project", pc.AddProject)
	portfolio.Post("/skill", pc.AddSkill)
}
