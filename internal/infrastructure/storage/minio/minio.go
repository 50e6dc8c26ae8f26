package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"team-files-api/config"
	"team-files-api/internal/application/ports"
	"team-files-api/internal/domain/file"
	"team-files-api/internal/infrastructure/storage"
)

// 50MB
const maxFileSize = int64(50 << 20)

type Client struct {
	logger *zap.Logger
	api    *minio.Client
	bucket string
	useSSL bool
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Minio,
) (*Client, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		BucketLookup: minio.BucketLookupAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := api.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check failed: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket %q does not exist", cfg.Bucket)
	}

	logger.Info("minio storage connected successfully", zap.String("bucket", cfg.Bucket))

	return &Client{
		logger: logger,
		api:    api,
		bucket: cfg.Bucket,
		useSSL: cfg.UseSSL,
	}, nil
}

// Upload streams the object in chunks; minio-go reads src through the
// progress wrapper, so the caller sees incremental percentages.
func (c *Client) Upload(
	ctx context.Context,
	src io.Reader,
	size int64,
	key, contentType string,
	onProgress func(percent int),
) (*ports.StoredObject, error) {
	reader := storage.NewProgressReader(src, size, onProgress)

	_, err := c.api.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("minio upload of %q failed: %w", key, err)
	}

	return &ports.StoredObject{
		Bucket: c.bucket,
		Key:    key,
		URL:    c.PublicURL(key),
	}, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete of %q failed: %w", key, err)
	}
	return nil
}

func (c *Client) PublicURL(key string) string {
	scheme := "http"
	if c.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.api.EndpointURL().Host, c.bucket, key)
}

func (c *Client) Bucket() string           { return c.bucket }
func (c *Client) Provider() file.Provider  { return file.ProviderMinio }
func (c *Client) MaxFileSize() int64       { return maxFileSize }
func (c *Client) AllowedFormats() []string { return nil }
