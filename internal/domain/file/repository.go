package file

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists file metadata and exposes a live-updating view of
// the whole collection. Subscribe pushes the full ordered record set on
// every change; consumers replace their local view on each push.
type Repository interface {
	FetchFiles(ctx context.Context) (Files, error)
	FetchFileByID(ctx context.Context, uuid uuid.UUID) (*File, error)
	CreateFile(ctx context.Context, req *File) (*File, error)
	DeleteFile(ctx context.Context, uuid uuid.UUID) error

	// RecordDownload bumps the download counter with a relative
	// increment so concurrent downloaders never lose updates.
	RecordDownload(ctx context.Context, uuid uuid.UUID) error
	AddDownloadEntry(ctx context.Context, e *DownloadEntry) error

	// Subscribe delivers full snapshots until ctx is cancelled or the
	// underlying channel fails. A channel failure is terminal for this
	// subscription; callers re-subscribe explicitly.
	Subscribe(ctx context.Context) (<-chan Files, <-chan error, error)
}
