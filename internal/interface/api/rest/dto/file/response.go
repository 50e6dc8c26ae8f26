package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		UUID         uuid.UUID  `json:"uuid"`
		StorageName  string     `json:"storage_name"`
		OriginalName string     `json:"original_name"`
		MimeType     string     `json:"mime_type"`
		Category     string     `json:"category"`
		SizeBytes    uint64     `json:"size_bytes"`
		OwnerUUID    uuid.UUID  `json:"owner_uuid"`
		OwnerName    string     `json:"owner_name"`
		DownloadURL  string     `json:"download_url"`
		Provider     string     `json:"storage_provider"`
		Bucket       string     `json:"bucket"`
		StorageKey   string     `json:"storage_key"`
		Downloads    uint64     `json:"downloads"`
		LastDownload *time.Time `json:"last_downloaded_at,omitempty"`
		CreatedAt    time.Time  `json:"created_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}

	UploadResponse struct {
		UploadID string `json:"upload_id"`
		File     File   `json:"file"`
	}

	Stats struct {
		TotalFiles     int            `json:"total_files"`
		TotalSizeBytes uint64         `json:"total_size_bytes"`
		TotalDownloads uint64         `json:"total_downloads"`
		Categories     map[string]int `json:"categories"`
	}
)
