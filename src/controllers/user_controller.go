package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/lib"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/middleware"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Register handles user registration and returns a fresh bearer token
func (uc *UserController) Register(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := uc.users.Register(c.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := lib.GenerateJWT(user.Id.Hex())
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// Login authenticates a user by email and password and returns a bearer token
func (uc *UserController) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := uc.users.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := lib.GenerateJWT(user.Id.Hex())
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// GetProfile returns the authenticated user's account data
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.users.GetProfile(c.Context(), middleware.OwnerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"userInfo": user,
	})
}

// UpdateProfile applies a partial update to the account settings
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := uc.users.UpdateProfile(c.Context(), middleware.OwnerID(c), &patch)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"userInfo": user,
	})
}

// DeleteAccount removes the account and its portfolio
func (uc *UserController) DeleteAccount(c *fiber.Ctx) error {
	owner := middleware.OwnerID(c)
	if err := uc.users.DeleteAccount(c.Context(), owner); err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.ForgetUser(owner)
	lib.CacheInvalidate(c.Context(), previewCacheKey(owner))

	return c.JSON(lib.MessageResponse("Account deleted"))
}
