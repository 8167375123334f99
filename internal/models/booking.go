package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a buyer's request to meet a seller for one product.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID       string             `bson:"productId" json:"productId" validate:"required"`
	ProductName     string             `bson:"productName,omitempty" json:"productName,omitempty"`
	Price           float64            `bson:"price" json:"price" validate:"gte=0"`
	BuyerName       string             `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	BuyerEmail      string             `bson:"buyerEmail" json:"buyerEmail" validate:"omitempty,email"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	MeetingLocation string             `bson:"meetingLocation,omitempty" json:"meetingLocation,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
