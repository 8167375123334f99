package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/services"
)

const identityKey = "identity"

// TokenVerifier turns a raw bearer token into a verified identity.
type TokenVerifier interface {
	Verify(token string) (services.Identity, error)
}

// Auth validates the bearer token and stores the caller's identity for the
// handlers that follow. A missing header is 401, anything else invalid is 403.
func Auth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized access"})
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden access"})
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden access"})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// Identity returns the caller stored by Auth.
func Identity(c *fiber.Ctx) (services.Identity, bool) {
	identity, ok := c.Locals(identityKey).(services.Identity)
	if !ok || identity.IsZero() {
		return services.Identity{}, false
	}
	return identity, true
}
