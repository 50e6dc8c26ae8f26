package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"team-files-api/config"
	"team-files-api/internal/application/ports"
	"team-files-api/internal/domain/file"
	"team-files-api/internal/infrastructure/storage"
)

// 10MB
const maxFileSize = int64(10 << 20)

// The local store is the restrictive provider: objects are served from
// the service host, so only whitelisted formats are accepted.
var allowedFormats = []string{
	"jpg", "jpeg", "png", "gif", "webp", "bmp",
	"pdf", "doc", "docx", "txt",
	"xls", "xlsx", "csv",
	"ppt", "pptx",
	"zip", "rar",
}

type Client struct {
	logger  *zap.Logger
	dir     string
	baseURL string
	bucket  string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Local,
) (*Client, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare local storage dir: %w", err)
	}

	logger.Info("local storage ready", zap.String("dir", cfg.Dir))

	return &Client{
		logger:  logger,
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		bucket:  filepath.Base(cfg.Dir),
	}, nil
}

func (c *Client) Upload(
	ctx context.Context,
	src io.Reader,
	size int64,
	key, contentType string,
	onProgress func(percent int),
) (*ports.StoredObject, error) {
	dst := filepath.Join(c.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("local upload of %q failed: %w", key, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("local upload of %q failed: %w", key, err)
	}

	if _, err = io.Copy(f, storage.NewProgressReader(src, size, onProgress)); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return nil, fmt.Errorf("local upload of %q failed: %w", key, err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(dst)
		return nil, fmt.Errorf("local upload of %q failed: %w", key, err)
	}

	return &ports.StoredObject{
		Bucket: c.bucket,
		Key:    key,
		URL:    c.PublicURL(key),
	}, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(c.dir, filepath.FromSlash(key))); err != nil {
		return fmt.Errorf("local delete of %q failed: %w", key, err)
	}
	return nil
}

func (c *Client) PublicURL(key string) string {
	return c.baseURL + "/" + key
}

func (c *Client) Bucket() string           { return c.bucket }
func (c *Client) Provider() file.Provider  { return file.ProviderLocal }
func (c *Client) MaxFileSize() int64       { return maxFileSize }
func (c *Client) AllowedFormats() []string { return allowedFormats }
