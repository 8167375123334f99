package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/services"
)

// CatalogHandler serves the public read-only content.
type CatalogHandler struct {
	base
	catalog *services.CatalogService
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// GetCategory handles GET /categories/:id.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	category, err := h.catalog.Category(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// ListBlog handles GET /blog.
func (h *CatalogHandler) ListBlog(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	posts, err := h.catalog.Blog(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// ListFAQ handles GET /faq.
func (h *CatalogHandler) ListFAQ(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	faqs, err := h.catalog.FAQ(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(faqs)
}

// Stats handles GET /stats.
func (h *CatalogHandler) Stats(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	stats, err := h.catalog.Stats(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
