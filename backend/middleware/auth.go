package middleware

import (
	"buddycheck/backend/config"
	"buddycheck/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the locals key under which AuthMiddleware stores the
// authenticated user's id.
const UserIDKey = "user_id"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
