package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID   uint64
		UUID uuid.UUID

		StorageName  string
		OriginalName string
		MimeType     string
		Category     string
		SizeBytes    uint64

		OwnerUUID uuid.UUID
		OwnerName string

		DownloadURL string
		Provider    string
		Bucket      string
		StorageKey  string

		Downloads        uint64
		LastDownloadedAt *time.Time

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Files []*File
)
