package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/lib"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/repository"
)

// userCache avoids a database round trip on every authenticated request.
// Entries expire quickly so a deleted account is locked out within minutes.
var userCache = gocache.New(5*time.Minute, 10*time.Minute)

// Protect returns a middleware that checks for a valid bearer token, verifies
// that the account still exists, and attaches the owner id to the request
// context under "userId".
func Protect(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Token missing"))
		}

		// Expected format: "Bearer <token>"
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid token format"))
		}

		claims, err := lib.VerifyJWT(token)
		if err != nil || claims == nil {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid or expired token"))
		}

		userID, ok := claims["userId"].(string)
		if !ok {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid token payload"))
		}

		objectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid user id"))
		}

		if _, cached := userCache.Get(userID); !cached {
			if _, err := users.FindByID(c.Context(), objectID); err != nil {
				return models.RespondWithError(c, models.NewUnauthorizedError("User not found"))
			}
			userCache.Set(userID, true, gocache.DefaultExpiration)
		}

		c.Locals("userId", objectID)

		return c.Next()
	}
}

// ForgetUser drops a user from the auth cache, used after account deletion.
func ForgetUser(id primitive.ObjectID) {
	userCache.Delete(id.Hex())
}

// OwnerID reads the authenticated owner id set by Protect.
func OwnerID(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals("userId").(primitive.ObjectID)
	return id
}
