package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/services"
)

// AdminHandler serves user management for admins.
type AdminHandler struct {
	base
	users *services.UserService
}

// ListUsers handles GET /users?type=seller|buyer.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	users, err := h.users.List(ctx, c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// PromoteAdmin handles PUT /users/admin/:id.
func (h *AdminHandler) PromoteAdmin(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.users.PromoteAdmin(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// VerifySeller handles PUT /users/seller/:id.
func (h *AdminHandler) VerifySeller(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.users.VerifySeller(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// DeleteUser handles DELETE /users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.users.Delete(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
