package db

import (
	"context"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListCategories returns every category.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := findAll(ctx, s.categories, bson.M{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategory returns services.ErrNotFound for an unknown id.
func (s *Store) FindCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find category")
	}
	return &category, nil
}

// ListBlogPosts returns every blog post.
func (s *Store) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	posts := []models.BlogPost{}
	opts := options.Find().SetSort(bson.D{{Key: "posted", Value: -1}})
	if err := findAll(ctx, s.blogs, bson.M{}, &posts, opts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListFAQs returns every FAQ entry.
func (s *Store) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	faqs := []models.FAQ{}
	if err := findAll(ctx, s.faqs, bson.M{}, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}
