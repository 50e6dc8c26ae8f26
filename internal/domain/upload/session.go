package upload

import (
	"time"

	"team-files-api/internal/domain/file"
)

// Status of one client-visible upload attempt. Completed, error and
// cancelled are terminal: only an explicit retry leaves them.
type Status string

const (
	StatusPending    Status = "pending"
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether s accepts no further progress updates.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError || s == StatusCancelled
}

// Session tracks one upload attempt. Sessions are process-local and
// never persisted; they disappear on clear or service restart.
type Session struct {
	ID        string     `json:"id"`
	FileName  string     `json:"file_name"`
	SizeBytes int64      `json:"size_bytes"`
	Progress  int        `json:"progress"`
	Status    Status     `json:"status"`
	Error     string     `json:"error,omitempty"`
	Metadata  *file.File `json:"-"`
	StartedAt time.Time  `json:"started_at"`
}
