package api

import (
	"strings"

	"github.com/example/product-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store token claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware rejects requests that do not carry a valid bearer token.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return writeError(c, fiber.StatusUnauthorized, "unauthorized",
				"Authorization header is required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return writeError(c, fiber.StatusUnauthorized, "unauthorized",
				"Invalid authorization header format. Use: Bearer <token>")
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return writeError(c, fiber.StatusUnauthorized, "unauthorized", "Token is required")
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid token")
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}
