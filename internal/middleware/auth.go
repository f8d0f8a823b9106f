package middleware

import (
	"log"
	"strings"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/models"
	"laptopstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Keys of the caller identity stored in fiber.Ctx locals.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": apperrors.Message(err),
			})
		}

		c.Locals(LocalUserID, identity.UserID)
		c.Locals(LocalEmail, identity.Email)
		c.Locals(LocalRole, identity.Role)
		return c.Next()
	}
}

// AdminOnly rejects callers without the admin role. It must run after
// AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(LocalRole).(string); role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin privileges required",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's ID, or "" outside AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
