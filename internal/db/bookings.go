package db

import (
	"context"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListBookings returns the bookings made by buyerEmail.
func (s *Store) ListBookings(ctx context.Context, buyerEmail string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := findAll(ctx, s.bookings, bson.M{"buyerEmail": buyerEmail}, &bookings, opts); err != nil {
		return nil, err
	}
	return bookings, nil
}

// InsertBooking assigns a fresh id to b.
func (s *Store) InsertBooking(ctx context.Context, b models.Booking) (primitive.ObjectID, error) {
	b.ID = primitive.NewObjectID()
	if _, err := s.bookings.InsertOne(ctx, b); err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert booking")
	}
	return b.ID, nil
}

// CountBookings uses collection metadata, not a scan.
func (s *Store) CountBookings(ctx context.Context) (int64, error) {
	n, err := s.bookings.EstimatedDocumentCount(ctx)
	return n, errors.Wrap(err, "count bookings")
}
