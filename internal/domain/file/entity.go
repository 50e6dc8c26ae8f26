package file

import (
	"time"

	"github.com/google/uuid"

	"team-files-api/internal/domain/user"
)

// Provider identifies the object-storage backend a record lives on.
// Exactly one provider is active per deployment; the record keeps the
// tag so older records survive a provider migration.
type Provider string

const (
	ProviderS3    Provider = "s3"
	ProviderMinio Provider = "minio"
	ProviderLocal Provider = "local"
)

type (
	// File is the persisted metadata describing one uploaded object.
	File struct {
		UUID uuid.UUID

		StorageName  string
		OriginalName string
		MimeType     string
		Category     Category
		SizeBytes    uint64

		OwnerUUID user.UUID
		OwnerName string

		DownloadURL string
		Provider    Provider
		Bucket      string
		StorageKey  string

		Downloads        uint64
		LastDownloadedAt *time.Time

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Files []*File

	// DownloadEntry is one row of the append-only download audit log.
	// Entries outlive the file record they point at.
	DownloadEntry struct {
		UUID           uuid.UUID
		FileUUID       uuid.UUID
		FileName       string
		DownloaderUUID user.UUID
		DownloaderName string
		DownloadedAt   time.Time
	}

	// Stats is derived from an in-memory snapshot, never from the store.
	Stats struct {
		TotalFiles     int
		TotalSizeBytes uint64
		TotalDownloads uint64
		Categories     map[Category]int
	}
)

// CanBeDeletedBy implements the ownership rule: admins may delete any
// file, everyone else only their own.
func (f *File) CanBeDeletedBy(u *user.User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.UUID == f.OwnerUUID
}
