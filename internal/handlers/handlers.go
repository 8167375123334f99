package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/m7real/ex-mobile-server/internal/middleware"
	"github.com/m7real/ex-mobile-server/internal/services"
)

// Deps carries the services the HTTP layer is built on.
type Deps struct {
	Tokens       *services.TokenService
	Access       *services.AccessService
	Users        *services.UserService
	Products     *services.ProductService
	Bookings     *services.BookingService
	Catalog      *services.CatalogService
	Images       *services.ImageService
	StoreTimeout time.Duration
}

// AppConfig is the Fiber configuration the API is served with.
func AppConfig() fiber.Config {
	return fiber.Config{
		AppName:      "ex-mobile-server",
		ErrorHandler: ErrorHandler,
	}
}

// base gives every handler a bounded context for store calls.
type base struct {
	timeout time.Duration
}

func (b base) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), b.timeout)
}

func caller(c *fiber.Ctx) services.Identity {
	identity, _ := middleware.Identity(c)
	return identity
}

func objectID(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, services.ErrInvalidID
	}
	return id, nil
}

// pathParam returns the percent-decoded route param. Fiber hands params
// over raw, so "a%40x.com" must become "a@x.com" before a lookup.
func pathParam(c *fiber.Ctx, param string) (string, error) {
	v, err := url.PathUnescape(c.Params(param))
	if err != nil {
		return "", fmt.Errorf("%w: malformed %s", services.ErrBadRequest, param)
	}
	return v, nil
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// respondError maps service errors to status codes. Anything unknown goes
// to ErrorHandler as a 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return message(c, fiber.StatusUnauthorized, "unauthorized access")
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrInvalidToken):
		return message(c, fiber.StatusForbidden, "forbidden access")
	case errors.Is(err, services.ErrNotFound):
		return message(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrInvalidID), errors.Is(err, services.ErrBadRequest):
		return message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStorageDisabled):
		return message(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		return err
	}
}

// ErrorHandler is the fiber.Config error handler. Server errors are logged
// and hidden from the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err),
		)
	}
	return message(c, code, msg)
}
