package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/services"
)

// UploadImage handles POST /products/:id/image with a multipart "image" field.
func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return message(c, fiber.StatusBadRequest, "failed to retrieve image")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return message(c, fiber.StatusBadRequest, "failed to open image")
	}
	defer file.Close()

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.images.Upload(ctx, caller(c), id, services.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
