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

func productFilter(f models.ProductFilter) bson.M {
	filter := bson.M{}
	if f.CategoryID != "" {
		filter["categoryId"] = f.CategoryID
	}
	if f.SellerEmail != "" {
		filter["sellerEmail"] = f.SellerEmail
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Reported != nil {
		filter["reported"] = *f.Reported
	}
	if f.Advertised != nil {
		filter["advertised"] = *f.Advertised
	}
	return filter
}

// ownedBy narrows an _id filter to products of sellerEmail, if given.
func ownedBy(id primitive.ObjectID, sellerEmail string) bson.M {
	filter := bson.M{"_id": id}
	if sellerEmail != "" {
		filter["sellerEmail"] = sellerEmail
	}
	return filter
}

// ListProducts returns matching products, newest first.
func (s *Store) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	products := []models.Product{}
	opts := options.Find().SetSort(bson.D{{Key: "posted", Value: -1}})
	if err := findAll(ctx, s.products, productFilter(f), &products, opts); err != nil {
		return nil, err
	}
	return products, nil
}

// FindProduct returns services.ErrNotFound for an unknown id.
func (s *Store) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

// InsertProduct assigns a fresh id to p.
func (s *Store) InsertProduct(ctx context.Context, p models.Product) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	if _, err := s.products.InsertOne(ctx, p); err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert product")
	}
	return p.ID, nil
}

// AdvertiseProduct flags product id when sellerEmail owns it.
func (s *Store) AdvertiseProduct(ctx context.Context, id primitive.ObjectID, sellerEmail string) (models.UpdateResult, error) {
	return s.updateProduct(ctx, ownedBy(id, sellerEmail), bson.M{"advertised": true})
}

// ReportProduct flags product id for admin review, whoever owns it.
func (s *Store) ReportProduct(ctx context.Context, id primitive.ObjectID) (models.UpdateResult, error) {
	return s.updateProduct(ctx, bson.M{"_id": id}, bson.M{"reported": true})
}

// SetProductImage points product id at url when sellerEmail owns it.
func (s *Store) SetProductImage(ctx context.Context, id primitive.ObjectID, sellerEmail, url string) (models.UpdateResult, error) {
	return s.updateProduct(ctx, ownedBy(id, sellerEmail), bson.M{"image": url})
}

func (s *Store) updateProduct(ctx context.Context, filter, set bson.M) (models.UpdateResult, error) {
	res, err := s.products.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.UpdateResult{}, errors.Wrap(err, "update product")
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteProduct removes product id, restricted to sellerEmail unless empty.
func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID, sellerEmail string) (int64, error) {
	res, err := s.products.DeleteOne(ctx, ownedBy(id, sellerEmail))
	if err != nil {
		return 0, errors.Wrap(err, "delete product")
	}
	return res.DeletedCount, nil
}

// MarkSellerVerified stamps sellerVerified on every listing of sellerEmail.
func (s *Store) MarkSellerVerified(ctx context.Context, sellerEmail string) (int64, error) {
	res, err := s.products.UpdateMany(ctx,
		bson.M{"sellerEmail": sellerEmail},
		bson.M{"$set": bson.M{"sellerVerified": true}},
	)
	if err != nil {
		return 0, errors.Wrap(err, "verify seller products")
	}
	return res.ModifiedCount, nil
}

// CountProducts uses collection metadata, not a scan.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	n, err := s.products.EstimatedDocumentCount(ctx)
	return n, errors.Wrap(err, "count products")
}
