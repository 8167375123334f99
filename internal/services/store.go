package services

import (
	"context"
	"io"

	"github.com/m7real/ex-mobile-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore persists user documents. Lookups return ErrNotFound when no
// document matches.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUserIfAbsent inserts u unless a user with the same email exists.
	// It must be a single atomic operation.
	CreateUserIfAbsent(ctx context.Context, u models.User) (primitive.ObjectID, bool, error)
	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)
	// SetUserRole and SetUserVerified return the document as it was before
	// the update. They never create documents.
	SetUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.User, error)
	SetUserVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ProductStore persists product documents. Methods taking a sellerEmail
// only touch the product when it is owned by that seller; an empty
// sellerEmail skips the ownership condition.
type ProductStore interface {
	ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	InsertProduct(ctx context.Context, p models.Product) (primitive.ObjectID, error)
	AdvertiseProduct(ctx context.Context, id primitive.ObjectID, sellerEmail string) (models.UpdateResult, error)
	ReportProduct(ctx context.Context, id primitive.ObjectID) (models.UpdateResult, error)
	SetProductImage(ctx context.Context, id primitive.ObjectID, sellerEmail, url string) (models.UpdateResult, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID, sellerEmail string) (int64, error)
	MarkSellerVerified(ctx context.Context, sellerEmail string) (int64, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	ListBookings(ctx context.Context, buyerEmail string) ([]models.Booking, error)
	InsertBooking(ctx context.Context, b models.Booking) (primitive.ObjectID, error)
}

// CatalogStore reads categories, blog posts and FAQs. FindCategory
// returns ErrNotFound for an unknown id.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
}

// StatsStore returns approximate collection sizes.
type StatsStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
}

// Store is everything the API needs from the database.
type Store interface {
	UserStore
	ProductStore
	BookingStore
	CatalogStore
	StatsStore
}

// ObjectStore keeps uploaded binaries and returns their public URL.
type ObjectStore interface {
	PutObject(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	RemoveObject(ctx context.Context, name string) error
}
