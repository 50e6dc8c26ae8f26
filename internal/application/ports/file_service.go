package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"team-files-api/internal/domain/file"
	"team-files-api/internal/domain/upload"
	"team-files-api/internal/domain/user"
)

// FileService is the orchestration surface the REST layer consumes:
// the live file snapshot, the upload pipeline and the per-session
// upload registry.
type FileService interface {
	Run(ctx context.Context) error
	Refresh(ctx context.Context) error

	Files() (file.Files, error)
	SearchFiles(term string) file.Files
	FilesByCategory(c file.Category) file.Files
	FilesByOwner(owner user.UUID) file.Files
	Stats() file.Stats

	UploadFile(ctx context.Context, actor *user.User, fh *multipart.FileHeader) (*file.File, string, error)
	DownloadFile(ctx context.Context, actor *user.User, fileUUID uuid.UUID) (*file.File, error)
	DeleteFile(ctx context.Context, actor *user.User, fileUUID uuid.UUID) error

	Uploads() []*upload.Session
	CancelUpload(id string) error
	RetryUpload(ctx context.Context, id string) (*file.File, error)
	ClearCompletedUploads()
	ClearAllUploads()
}
