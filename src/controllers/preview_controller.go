package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/lib"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/preview"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/services"
)

const previewCacheTTL = 5 * time.Minute

type PreviewController struct {
	portfolios *services.PortfolioService
}

func NewPreviewController(portfolios *services.PortfolioService) *PreviewController {
	return &PreviewController{portfolios: portfolios}
}

// GetPreview renders the public themed preview of a user's portfolio. The
// portfolio is cached per owner; theme selection is applied per request so
// all themes share one cached document.
func (pc *PreviewController) GetPreview(c *fiber.Ctx) error {
	owner, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid user id"))
	}

	var portfolio models.Portfolio
	err = lib.CacheAside(c.Context(), previewCacheKey(owner), &portfolio, previewCacheTTL, func() error {
		p, err := pc.portfolios.Get(c.Context(), owner)
		if err != nil {
			return err
		}
		portfolio = *p
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	theme := preview.ParseTheme(c.Query("theme"))

	return c.JSON(fiber.Map{
		"success": true,
		"preview": preview.Render(&portfolio, theme),
	})
}
