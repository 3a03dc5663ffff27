package middleware

import (
	"strings"

	"go-stock-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator is satisfied by *jwt.Verifier.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// RequireAuth verifies the identity provider's bearer token and sets user info in context
func RequireAuth(verifier TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := verifier.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Set user info in context for downstream handlers
		c.Locals("user_id", claims.Subject)
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)

		return c.Next()
	}
}

// AnonymousAuth stands in for RequireAuth when AUTH_DISABLED is set.
func AnonymousAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", "system")
		c.Locals("user_name", "System")
		return c.Next()
	}
}
