package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
)

// RoleChecker looks up whether a caller holds a role.
type RoleChecker interface {
	RequireRole(ctx context.Context, caller services.Identity, role models.Role) error
}

// RequireRole lets the request through only when the authenticated caller
// holds role. A route without Auth in front of it answers 401.
func RequireRole(checker RoleChecker, role models.Role, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := Identity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized access"})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		err := checker.RequireRole(ctx, identity, role)
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden access"})
		}
		if err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin(checker RoleChecker, timeout time.Duration) fiber.Handler {
	return RequireRole(checker, models.RoleAdmin, timeout)
}

// RequireSeller gates routes that create or change listings.
func RequireSeller(checker RoleChecker, timeout time.Duration) fiber.Handler {
	return RequireRole(checker, models.RoleSeller, timeout)
}
