package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
)

// ProductHandler serves listings and their images.
type ProductHandler struct {
	base
	products *services.ProductService
	images   *services.ImageService
}

// List handles GET /products?category=|reported=|email=.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := services.ProductQuery{
		Category: c.Query("category"),
		Email:    c.Query("email"),
	}
	if raw := c.Query("reported"); raw != "" {
		reported, err := strconv.ParseBool(raw)
		if err != nil {
			return respondError(c, fmt.Errorf("%w: reported must be a boolean", services.ErrBadRequest))
		}
		q.Reported = &reported
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	products, err := h.products.List(ctx, caller(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// ListAdvertised handles the public GET /products/advertised.
func (h *ProductHandler) ListAdvertised(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	products, err := h.products.ListAdvertised(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// Create handles POST /products for sellers.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.products.Create(ctx, caller(c), product)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update handles PUT /products/:id; the body's info field picks the mutation.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req services.ProductUpdate
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.products.Update(ctx, caller(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Delete handles DELETE /products/:id for admins and the owning seller.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.products.Delete(ctx, caller(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
