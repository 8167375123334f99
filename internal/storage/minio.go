package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MinioConfig locates the object store and its bucket.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Minio stores product images in a single bucket.
type Minio struct {
	client *minio.Client
	bucket string
	base   url.URL
}

// NewMinio connects to cfg.Endpoint and creates the bucket when missing.
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		zap.L().Warn("failed to check bucket existence", zap.String("bucket", cfg.Bucket), zap.Error(err))
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			zap.L().Warn("failed to create bucket", zap.String("bucket", cfg.Bucket), zap.Error(err))
		} else {
			zap.L().Info("created bucket", zap.String("bucket", cfg.Bucket))
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	zap.L().Info("connected to MinIO", zap.String("endpoint", cfg.Endpoint))
	return &Minio{
		client: client,
		bucket: cfg.Bucket,
		base:   url.URL{Scheme: scheme, Host: cfg.Endpoint},
	}, nil
}

// PutObject uploads r under name and returns its public URL.
func (m *Minio) PutObject(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", name)
	}
	return m.objectURL(name), nil
}

// RemoveObject deletes name from the bucket.
func (m *Minio) RemoveObject(ctx context.Context, name string) error {
	err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
	return errors.Wrapf(err, "remove object %s", name)
}

func (m *Minio) objectURL(name string) string {
	u := m.base
	u.Path = fmt.Sprintf("/%s/%s", m.bucket, name)
	return u.String()
}
