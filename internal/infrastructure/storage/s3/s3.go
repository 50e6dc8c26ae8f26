package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"team-files-api/config"
	"team-files-api/internal/application/ports"
	"team-files-api/internal/domain/file"
)

// 100MB
const maxFileSize = int64(100 << 20)

type Client struct {
	logger   *zap.Logger
	api      *s3.Client
	region   string
	bucket   string
	endpoint string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 storage configured", zap.String("bucket", cfg.Bucket), zap.String("region", cfg.Region))

	return &Client{
		logger:   logger,
		api:      api,
		region:   cfg.Region,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
	}, nil
}

// Upload is a single PutObject request, so progress degrades to two
// steps: 0 at start, 100 once the request returns.
func (c *Client) Upload(
	ctx context.Context,
	src io.Reader,
	size int64,
	key, contentType string,
	onProgress func(percent int),
) (*ports.StoredObject, error) {
	if onProgress != nil {
		onProgress(0)
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload of %q failed: %w", key, err)
	}

	if onProgress != nil {
		onProgress(100)
	}

	return &ports.StoredObject{
		Bucket: c.bucket,
		Key:    key,
		URL:    c.PublicURL(key),
	}, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete of %q failed: %w", key, err)
	}
	return nil
}

func (c *Client) PublicURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

func (c *Client) Bucket() string           { return c.bucket }
func (c *Client) Provider() file.Provider  { return file.ProviderS3 }
func (c *Client) MaxFileSize() int64       { return maxFileSize }
func (c *Client) AllowedFormats() []string { return nil }
