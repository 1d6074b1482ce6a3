package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole admits users holding any of roles. It must run after
// AuthRequired.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("Authentication required")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return Forbidden("Admin access required")
	}
}
