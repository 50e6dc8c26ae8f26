package ports

import (
	"context"
	"io"

	"team-files-api/internal/domain/file"
)

// StoredObject is what an adapter returns on a successful upload:
// enough for the metadata layer to build a complete file record.
type StoredObject struct {
	Bucket string
	Key    string
	URL    string
}

// StorageClient is one object-storage provider binding. The binding is
// chosen once at process start from configuration; a deployment never
// switches providers per call.
//
// onProgress receives percentages in [0,100]. Adapters whose transfer
// is a single request report only 0 and 100.
type StorageClient interface {
	Upload(ctx context.Context, src io.Reader, size int64, key, contentType string, onProgress func(percent int)) (*StoredObject, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Bucket() string
	Provider() file.Provider

	// MaxFileSize and AllowedFormats feed validation; limits differ
	// per provider. An empty AllowedFormats means no format restriction
	// beyond the category lists.
	MaxFileSize() int64
	AllowedFormats() []string
}
