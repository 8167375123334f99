package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStatus tracks whether a listing can still be booked.
type ProductStatus string

const (
	StatusAvailable ProductStatus = "available"
	StatusSold      ProductStatus = "sold"
)

// Product is a second-hand phone listing. UsedYears is computed per
// response and never stored.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name" validate:"required"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	CategoryID     string             `bson:"categoryId" json:"categoryId" validate:"required"`
	SellerName     string             `bson:"sellerName,omitempty" json:"sellerName,omitempty"`
	SellerEmail    string             `bson:"sellerEmail" json:"sellerEmail"`
	SellerVerified bool               `bson:"sellerVerified" json:"sellerVerified"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Condition      string             `bson:"condition,omitempty" json:"condition,omitempty" validate:"omitempty,oneof=excellent good fair"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	OriginalPrice  float64            `bson:"originalPrice" json:"originalPrice" validate:"gte=0"`
	ResalePrice    float64            `bson:"resalePrice" json:"resalePrice" validate:"gte=0"`
	PurchasedYear  int                `bson:"purchasedYear" json:"purchasedYear" validate:"required,gte=1970,lte=9999"`
	Status         ProductStatus      `bson:"status" json:"status"`
	Advertised     bool               `bson:"advertised" json:"advertised"`
	Reported       bool               `bson:"reported" json:"reported"`
	Posted         time.Time          `bson:"posted" json:"posted"`

	// UsedYears is derived on read and never stored.
	UsedYears int `bson:"-" json:"usedYears"`
}

// ProductFilter selects products. Zero fields do not constrain the query.
// ProductFilter narrows a product listing. Zero fields do not filter.
type ProductFilter struct {
	CategoryID  string
	SellerEmail string
	Status      ProductStatus
	Reported    *bool
	Advertised  *bool
}
