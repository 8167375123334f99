package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m7real/ex-mobile-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	// maxImageSize caps a single product image upload.
	maxImageSize = 5 << 20

	orphanRemoveTimeout = 30 * time.Second
)

// ImageUpload is one product picture read from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageService stores product pictures in object storage.
type ImageService struct {
	products ProductStore
	objects  ObjectStore
}

// NewImageService returns a service that rejects uploads with
// ErrStorageDisabled when objects is nil.
func NewImageService(products ProductStore, objects ObjectStore) *ImageService {
	return &ImageService{products: products, objects: objects}
}

// Upload stores img and points product id at it. Only the product's
// seller may upload.
func (s *ImageService) Upload(ctx context.Context, caller Identity, id primitive.ObjectID, img ImageUpload) (models.UpdateResult, error) {
	if s.objects == nil {
		return models.UpdateResult{}, ErrStorageDisabled
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return models.UpdateResult{}, fmt.Errorf("%w: content type %q is not an image", ErrBadRequest, img.ContentType)
	}
	if img.Size <= 0 || img.Size > maxImageSize {
		return models.UpdateResult{}, fmt.Errorf("%w: image must be between 1 byte and %d bytes", ErrBadRequest, maxImageSize)
	}

	product, err := s.products.FindProduct(ctx, id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if product.SellerEmail != caller.Email() {
		return models.UpdateResult{}, ErrForbidden
	}

	objectName := fmt.Sprintf("products/%s/%s%s", id.Hex(), uuid.NewString(), strings.ToLower(path.Ext(img.Filename)))
	url, err := s.objects.PutObject(ctx, objectName, img.Body, img.Size, img.ContentType)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("upload image: %w", err)
	}

	res, err := s.products.SetProductImage(ctx, id, caller.Email(), url)
	if err == nil && res.MatchedCount == 0 {
		err = ErrForbidden
	}
	if err != nil {
		// The listing changed hands or vanished; drop the orphaned object.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), orphanRemoveTimeout)
			defer cancel()
			if rmErr := s.objects.RemoveObject(ctx, objectName); rmErr != nil {
				zap.L().Warn("remove orphaned image", zap.String("object", objectName), zap.Error(rmErr))
			}
		}()
		return models.UpdateResult{}, err
	}
	return res, nil
}
