// Package testutils holds in-memory doubles for the store and object
// storage so services and handlers can be tested without MongoDB or MinIO.
package testutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
)

// MemStore implements services.Store with maps guarded by one mutex.
type MemStore struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]models.User
	products   map[primitive.ObjectID]models.Product
	bookings   map[primitive.ObjectID]models.Booking
	categories []models.Category
	blogs      []models.BlogPost
	faqs       []models.FAQ

	// ProductQueries counts ListProducts calls.
	ProductQueries int
}

var _ services.Store = (*MemStore)(nil)

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:    map[primitive.ObjectID]models.User{},
		products: map[primitive.ObjectID]models.Product{},
		bookings: map[primitive.ObjectID]models.Booking{},
	}
}

// AddUser seeds a user and returns its id.
func (s *MemStore) AddUser(u models.User) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
	return u.ID
}

// AddProduct seeds a product and returns its id.
func (s *MemStore) AddProduct(p models.Product) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = p
	return p.ID
}

func (s *MemStore) AddCategory(c models.Category) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.categories = append(s.categories, c)
	return c.ID
}

func (s *MemStore) AddBlogPost(b models.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs = append(s.blogs, b)
}

func (s *MemStore) AddFAQ(f models.FAQ) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faqs = append(s.faqs, f)
}

// User returns a copy of the stored user.
func (s *MemStore) User(id primitive.ObjectID) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// Product returns a copy of the stored product.
func (s *MemStore) Product(id primitive.ObjectID) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *MemStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *MemStore) CreateUserIfAbsent(_ context.Context, u models.User) (primitive.ObjectID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return primitive.NilObjectID, false, nil
		}
	}
	u.ID = primitive.NewObjectID()
	s.users[u.ID] = u
	return u.ID, true, nil
}

func (s *MemStore) ListUsers(_ context.Context, role models.Role) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		if role == "" || u.HasRole(role) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *MemStore) SetUserRole(_ context.Context, id primitive.ObjectID, role models.Role) (*models.User, error) {
	return s.updateUser(id, func(u *models.User) { u.Role = role })
}

func (s *MemStore) SetUserVerified(_ context.Context, id primitive.ObjectID, verified bool) (*models.User, error) {
	return s.updateUser(id, func(u *models.User) { u.Verified = verified })
}

func (s *MemStore) updateUser(id primitive.ObjectID, apply func(*models.User)) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before, ok := s.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	after := before
	apply(&after)
	s.users[id] = after
	return &before, nil
}

func (s *MemStore) DeleteUser(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}

func (s *MemStore) CountUsers(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func matchProduct(p models.Product, f models.ProductFilter) bool {
	switch {
	case f.CategoryID != "" && p.CategoryID != f.CategoryID:
		return false
	case f.SellerEmail != "" && p.SellerEmail != f.SellerEmail:
		return false
	case f.Status != "" && p.Status != f.Status:
		return false
	case f.Reported != nil && p.Reported != *f.Reported:
		return false
	case f.Advertised != nil && p.Advertised != *f.Advertised:
		return false
	}
	return true
}

func (s *MemStore) ListProducts(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProductQueries++
	out := []models.Product{}
	for _, p := range s.products {
		if matchProduct(p, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Posted.After(out[j].Posted) })
	return out, nil
}

func (s *MemStore) FindProduct(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &p, nil
}

func (s *MemStore) InsertProduct(_ context.Context, p models.Product) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	s.products[p.ID] = p
	return p.ID, nil
}

func (s *MemStore) AdvertiseProduct(_ context.Context, id primitive.ObjectID, sellerEmail string) (models.UpdateResult, error) {
	return s.updateProduct(id, sellerEmail, func(p *models.Product) bool {
		changed := !p.Advertised
		p.Advertised = true
		return changed
	})
}

func (s *MemStore) ReportProduct(_ context.Context, id primitive.ObjectID) (models.UpdateResult, error) {
	return s.updateProduct(id, "", func(p *models.Product) bool {
		changed := !p.Reported
		p.Reported = true
		return changed
	})
}

func (s *MemStore) SetProductImage(_ context.Context, id primitive.ObjectID, sellerEmail, url string) (models.UpdateResult, error) {
	return s.updateProduct(id, sellerEmail, func(p *models.Product) bool {
		changed := p.Image != url
		p.Image = url
		return changed
	})
}

func (s *MemStore) updateProduct(id primitive.ObjectID, sellerEmail string, apply func(*models.Product) bool) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := models.UpdateResult{Acknowledged: true}
	p, ok := s.products[id]
	if !ok || (sellerEmail != "" && p.SellerEmail != sellerEmail) {
		return res, nil
	}
	res.MatchedCount = 1
	if apply(&p) {
		res.ModifiedCount = 1
	}
	s.products[id] = p
	return res, nil
}

func (s *MemStore) DeleteProduct(_ context.Context, id primitive.ObjectID, sellerEmail string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || (sellerEmail != "" && p.SellerEmail != sellerEmail) {
		return 0, nil
	}
	delete(s.products, id)
	return 1, nil
}

func (s *MemStore) MarkSellerVerified(_ context.Context, sellerEmail string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, p := range s.products {
		if p.SellerEmail == sellerEmail && !p.SellerVerified {
			p.SellerVerified = true
			s.products[id] = p
			n++
		}
	}
	return n, nil
}

func (s *MemStore) CountProducts(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.products)), nil
}

func (s *MemStore) ListBookings(_ context.Context, buyerEmail string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.BuyerEmail == buyerEmail {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemStore) InsertBooking(_ context.Context, b models.Booking) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = primitive.NewObjectID()
	s.bookings[b.ID] = b
	return b.ID, nil
}

func (s *MemStore) CountBookings(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.bookings)), nil
}

func (s *MemStore) ListCategories(context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category{}, s.categories...), nil
}

func (s *MemStore) FindCategory(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *MemStore) ListBlogPosts(context.Context) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BlogPost{}, s.blogs...), nil
}

func (s *MemStore) ListFAQs(context.Context) ([]models.FAQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FAQ{}, s.faqs...), nil
}

// MemObjects is an in-memory services.ObjectStore.
type MemObjects struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

// NewMemObjects returns an empty object store.
func NewMemObjects() *MemObjects {
	return &MemObjects{Objects: map[string][]byte{}}
}

func (m *MemObjects) PutObject(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[name] = buf.Bytes()
	return fmt.Sprintf("http://objects.test/%s", name), nil
}

func (m *MemObjects) RemoveObject(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, name)
	return nil
}

// Len returns the number of stored objects.
func (m *MemObjects) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
