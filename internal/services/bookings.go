package services

import (
	"context"
	"time"

	"github.com/m7real/ex-mobile-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService records buyers' bookings.
type BookingService struct {
	bookings BookingStore
	now      func() time.Time
}

// NewBookingService returns a BookingService over bookings.
func NewBookingService(bookings BookingStore) *BookingService {
	return &BookingService{bookings: bookings, now: time.Now}
}

// List returns the bookings of email, which must be the caller.
func (s *BookingService) List(ctx context.Context, caller Identity, email string) ([]models.Booking, error) {
	if email != caller.Email() {
		return nil, ErrForbidden
	}
	return s.bookings.ListBookings(ctx, email)
}

// Create books a product for the caller.
func (s *BookingService) Create(ctx context.Context, caller Identity, b models.Booking) (models.InsertResult, error) {
	if b.BuyerEmail != "" && b.BuyerEmail != caller.Email() {
		return models.InsertResult{}, ErrForbidden
	}
	b.BuyerEmail = caller.Email()
	if err := validateStruct(b); err != nil {
		return models.InsertResult{}, err
	}
	b.ID = primitive.NilObjectID
	b.CreatedAt = s.now().UTC()

	id, err := s.bookings.InsertBooking(ctx, b)
	if err != nil {
		return models.InsertResult{}, err
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}
