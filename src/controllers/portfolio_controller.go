package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/lib"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/middleware"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/services"
)

type PortfolioController struct {
	portfolios *services.PortfolioService
}

func NewPortfolioController(portfolios *services.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolios: portfolios}
}

func previewCacheKey(owner primitive.ObjectID) string {
	return "preview:" + owner.Hex()
}

// Create builds a new portfolio for the authenticated user
func (pc *PortfolioController) Create(c *fiber.Ctx) error {
	var patch models.PortfolioPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	owner := middleware.OwnerID(c)
	portfolio, err := pc.portfolios.Create(c.Context(), owner, &patch)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"portfolio": portfolio,
	})
}

// Get returns the authenticated user's portfolio
func (pc *PortfolioController) Get(c *fiber.Ctx) error {
	portfolio, err := pc.portfolios.Get(c.Context(), middleware.OwnerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"portfolio": portfolio,
	})
}

// Update applies a partial top-level patch to the portfolio
func (pc *PortfolioController) Update(c *fiber.Ctx) error {
	var patch models.PortfolioPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	owner := middleware.OwnerID(c)
	portfolio, err := pc.portfolios.Update(c.Context(), owner, &patch)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.JSON(fiber.Map{
		"success":   true,
		"portfolio": portfolio,
	})
}

// Delete removes the authenticated user's portfolio
func (pc *PortfolioController) Delete(c *fiber.Ctx) error {
	owner := middleware.OwnerID(c)
	if err := pc.portfolios.Delete(c.Context(), owner); err != nil {
		return models.RespondWithError(c, err)
	}

	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.JSON(lib.MessageResponse("Portfolio deleted"))
}

// AddEducation appends one education entry
func (pc *PortfolioController) AddEducation(c *fiber.Ctx) error {
	var entry models.Education
	if err := c.BodyParser(&entry); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	owner := middleware.OwnerID(c)
	education, err := pc.portfolios.AddEducation(c.Context(), owner, entry)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.JSON(fiber.Map{
		"success":   true,
		"education": education,
	})
}

// AddExperience appends one experience entry
func (pc *PortfolioController) AddExperience(c *fiber.Ctx) error {
	var entry models.Experience
	if err := c.BodyParser(&entry); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	owner := middleware.OwnerID(c)
	experience, err := pc.portfolios.AddExperience(c.Context(), owner, entry)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.JSON(fiber.Map{
		"success":    true,
		"experience": experience,
	})
}

// AddProject appends one project entry
func (pc *PortfolioController) AddProject(c *fiber.Ctx) error {
	var entry models.Project
	if err := c.BodyParser(&entry); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	owner := middleware.OwnerID(c)
	projects, err := pc.portfolios.AddProject(c.Context(), owner, entry)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.JSON(fiber.Map{
		"success":  true,
		"projects": projects,
	})
}

// AddSkill appends one skill entry
func (pc *PortfolioController) AddSkill(c *fiber.Ctx) error {
	var entry models.Skill
	if err := c.BodyParser(&entry); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	owner := middleware.OwnerID(c)
	skills, err := pc.portfolios.AddSkill(c.Context(), owner, entry)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.JSON(fiber.Map{
		"success": true,
		"skills":  skills,
	})
}
