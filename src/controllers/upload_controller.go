package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/storage"
)

type UploadController struct {
	images storage.ImageStore
}

func NewUploadController(images storage.ImageStore) *UploadController {
	return &UploadController{images: images}
}

// UploadImage stores a multipart image and returns its URL
func (uc *UploadController) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	imageURL, err := uc.images.Put(c.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Image uploaded successfully",
		"imageUrl": imageURL,
	})
}
