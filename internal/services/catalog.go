package services

import (
	"context"

	"github.com/m7real/ex-mobile-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// CatalogService serves read-only content and collection stats.
type CatalogService struct {
	catalog CatalogStore
	stats   StatsStore
}

// NewCatalogService returns a CatalogService over catalog and stats.
func NewCatalogService(catalog CatalogStore, stats StatsStore) *CatalogService {
	return &CatalogService{catalog: catalog, stats: stats}
}

// Categories lists every phone category.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.catalog.ListCategories(ctx)
}

// Category returns one category or ErrNotFound.
func (s *CatalogService) Category(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.catalog.FindCategory(ctx, id)
}

// Blog lists the blog posts.
func (s *CatalogService) Blog(ctx context.Context) ([]models.BlogPost, error) {
	return s.catalog.ListBlogPosts(ctx)
}

// FAQ lists the frequently asked questions.
func (s *CatalogService) FAQ(ctx context.Context) ([]models.FAQ, error) {
	return s.catalog.ListFAQs(ctx)
}

// Stats counts users, products and bookings concurrently.
func (s *CatalogService) Stats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Users, err = s.stats.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Products, err = s.stats.CountProducts(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Bookings, err = s.stats.CountBookings(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}
	return out, nil
}
