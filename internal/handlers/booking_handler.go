package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
)

// BookingHandler serves a buyer's own bookings.
type BookingHandler struct {
	base
	bookings *services.BookingService
}

// List handles GET /bookings?email=; callers only see their own bookings.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	bookings, err := h.bookings.List(ctx, caller(c), c.Query("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}

// Create handles POST /bookings; the booking is always made for the caller.
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var booking models.Booking
	if err := c.BodyParser(&booking); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.bookings.Create(ctx, caller(c), booking)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
