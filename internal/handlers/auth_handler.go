package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
)

// AuthHandler serves the public identity routes: token issue, role checks
// and sign-up.
type AuthHandler struct {
	base
	users *services.UserService
}

// IssueToken handles GET /jwt?email=. Unknown emails get 403 and an empty token.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	token, err := h.users.IssueToken(ctx, c.Query("email"))
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"accessToken": ""})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"accessToken": token})
}

// CheckAdmin handles GET /users/admin/:email.
func (h *AuthHandler) CheckAdmin(c *fiber.Ctx) error {
	email, err := pathParam(c, "email")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	isAdmin, err := h.users.IsAdmin(ctx, email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"isAdmin": isAdmin})
}

// CheckSeller handles GET /users/seller/:email.
func (h *AuthHandler) CheckSeller(c *fiber.Ctx) error {
	email, err := pathParam(c, "email")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	status, err := h.users.SellerStatus(ctx, email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// CreateUser handles POST /users. Repeating it for a known email is a no-op.
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.users.Create(ctx, user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
