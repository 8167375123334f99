package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m7real/ex-mobile-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Update discriminators accepted by ProductService.Update.
const (
	InfoAdvertise = "advertise"
	InfoReported  = "reported"
)

// ProductQuery holds the list filters from the query string. At most one
// applies, checked in the order Category, Reported, Email.
type ProductQuery struct {
	Category string
	Reported *bool
	Email    string
}

// ProductRef is the client's view of the product it wants to mutate.
type ProductRef struct {
	ID          string `json:"_id"`
	SellerEmail string `json:"sellerEmail"`
}

// ProductUpdate is the body of PUT /products/:id.
type ProductUpdate struct {
	Info    string     `json:"info"`
	Product ProductRef `json:"product"`
}

// ProductService implements listing queries and mutations.
type ProductService struct {
	products ProductStore
	users    UserStore
	access   *AccessService
	now      func() time.Time
}

// NewProductService returns a ProductService. access decides whether a
// caller may delete any listing.
func NewProductService(products ProductStore, users UserStore, access *AccessService) *ProductService {
	return &ProductService{products: products, users: users, access: access, now: time.Now}
}

// List returns products matching q, each with UsedYears filled in.
func (s *ProductService) List(ctx context.Context, caller Identity, q ProductQuery) ([]models.Product, error) {
	var f models.ProductFilter
	switch {
	case q.Category != "":
		f.CategoryID = q.Category
		f.Status = models.StatusAvailable
	case q.Reported != nil:
		f.Reported = q.Reported
	case q.Email != "":
		if q.Email != caller.Email() {
			return nil, ErrForbidden
		}
		f.SellerEmail = q.Email
	}
	return s.list(ctx, f)
}

// ListAdvertised returns available products their sellers have advertised.
func (s *ProductService) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	advertised := true
	return s.list(ctx, models.ProductFilter{Advertised: &advertised, Status: models.StatusAvailable})
}

func (s *ProductService) list(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	products, err := s.products.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	year := s.now().Year()
	for i := range products {
		products[i].UsedYears = year - products[i].PurchasedYear
	}
	return products, nil
}

// Create stores a new listing owned by caller.
func (s *ProductService) Create(ctx context.Context, caller Identity, p models.Product) (models.InsertResult, error) {
	if err := validateStruct(p); err != nil {
		return models.InsertResult{}, err
	}
	seller, err := s.users.FindUserByEmail(ctx, caller.Email())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.InsertResult{}, ErrForbidden
		}
		return models.InsertResult{}, err
	}

	p.ID = primitive.NilObjectID
	p.SellerEmail = caller.Email()
	p.SellerVerified = seller.Verified
	if strings.TrimSpace(p.SellerName) == "" {
		p.SellerName = seller.Name
	}
	p.Status = models.StatusAvailable
	p.Advertised = false
	p.Reported = false
	p.Posted = s.now().UTC()

	id, err := s.products.InsertProduct(ctx, p)
	if err != nil {
		return models.InsertResult{}, err
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

// Update applies the mutation selected by u.Info to product id.
func (s *ProductService) Update(ctx context.Context, caller Identity, id primitive.ObjectID, u ProductUpdate) (models.UpdateResult, error) {
	switch u.Info {
	case InfoAdvertise:
		if u.Product.ID != id.Hex() || u.Product.SellerEmail != caller.Email() {
			return models.UpdateResult{}, ErrForbidden
		}
		res, err := s.products.AdvertiseProduct(ctx, id, caller.Email())
		if err != nil {
			return models.UpdateResult{}, err
		}
		if res.MatchedCount == 0 {
			return models.UpdateResult{}, s.missOrForbidden(ctx, id)
		}
		return res, nil
	case InfoReported:
		res, err := s.products.ReportProduct(ctx, id)
		if err != nil {
			return models.UpdateResult{}, err
		}
		if res.MatchedCount == 0 {
			return models.UpdateResult{}, ErrNotFound
		}
		return res, nil
	default:
		return models.UpdateResult{}, fmt.Errorf("%w: unknown info %q", ErrBadRequest, u.Info)
	}
}

// Delete removes product id when caller is an admin or its seller.
func (s *ProductService) Delete(ctx context.Context, caller Identity, id primitive.ObjectID) (models.DeleteResult, error) {
	isAdmin, err := s.access.HasRole(ctx, caller, models.RoleAdmin)
	if err != nil {
		return models.DeleteResult{}, err
	}
	owner := caller.Email()
	if isAdmin {
		owner = ""
	}
	n, err := s.products.DeleteProduct(ctx, id, owner)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if n == 0 {
		return models.DeleteResult{}, s.missOrForbidden(ctx, id)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// missOrForbidden explains why a conditional write matched nothing.
func (s *ProductService) missOrForbidden(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.products.FindProduct(ctx, id)
	if err != nil {
		return err
	}
	return ErrForbidden
}
