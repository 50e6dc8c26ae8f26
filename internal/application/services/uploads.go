package services

import (
	"errors"
	"mime/multipart"
	"strconv"
	"sync"
	"time"

	"team-files-api/internal/domain/file"
	"team-files-api/internal/domain/upload"
	"team-files-api/internal/domain/user"
)

var ErrUploadNotFound = errors.New("upload session not found")

// trackedUpload pairs the client-visible session with the retained
// source handle, so an explicit retry can re-open the same file.
type trackedUpload struct {
	session upload.Session
	source  *multipart.FileHeader
	owner   *user.User
}

// UploadTracker is the in-memory registry of upload attempts. Ordered
// by insertion (chronological), mutated only by adapter callbacks and
// explicit user actions, and never expired automatically.
type UploadTracker struct {
	mu       sync.Mutex
	sessions []*trackedUpload
}

func NewUploadTracker() *UploadTracker {
	return &UploadTracker{}
}

// Begin appends a pending session and returns its id. Ids are
// time-based; at user-interaction granularity that is unique enough,
// but an identical id among the currently tracked sessions is bumped
// rather than reused.
func (t *UploadTracker) Begin(fh *multipart.FileHeader, owner *user.User) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := strconv.FormatInt(time.Now().UnixNano(), 10)
	for t.lookup(id) != nil {
		id += "0"
	}

	t.sessions = append(t.sessions, &trackedUpload{
		session: upload.Session{
			ID:        id,
			FileName:  fh.Filename,
			SizeBytes: fh.Size,
			Status:    upload.StatusPending,
			StartedAt: time.Now(),
		},
		source: fh,
		owner:  owner,
	})

	return id
}

// lookup must be called with the lock held.
func (t *UploadTracker) lookup(id string) *trackedUpload {
	for _, tu := range t.sessions {
		if tu.session.ID == id {
			return tu
		}
	}
	return nil
}

// Sessions returns snapshot copies in insertion order.
func (t *UploadTracker) Sessions() []*upload.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*upload.Session, len(t.sessions))
	for idx, tu := range t.sessions {
		s := tu.session
		out[idx] = &s
	}
	return out
}

// Session returns a snapshot copy of one session, or nil.
func (t *UploadTracker) Session(id string) *upload.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil {
		return nil
	}
	s := tu.session
	return &s
}

// Source hands back the retained file handle and owner for a retry.
func (t *UploadTracker) Source(id string) (*multipart.FileHeader, *user.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil {
		return nil, nil, ErrUploadNotFound
	}
	return tu.source, tu.owner, nil
}

// MarkUploading moves a non-terminal session into uploading.
func (t *UploadTracker) MarkUploading(id string) {
	t.transition(id, upload.StatusUploading)
}

// MarkProcessing signals the metadata-write phase for adapters without
// transfer-level progress.
func (t *UploadTracker) MarkProcessing(id string) {
	t.transition(id, upload.StatusProcessing)
}

func (t *UploadTracker) transition(id string, status upload.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil || tu.session.Status.Terminal() {
		return
	}
	tu.session.Status = status
}

// UpdateProgress clamps percent to [0,100]. Updates against unknown or
// terminal sessions are silently ignored so a late adapter callback
// can never resurrect a finished session.
func (t *UploadTracker) UpdateProgress(id string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil || tu.session.Status.Terminal() {
		return
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	tu.session.Progress = percent
}

// Complete attaches the resulting metadata. Idempotent when already
// completed; a no-op when the user cancelled first (the transfer may
// still have finished server-side, but the session stays cancelled).
func (t *UploadTracker) Complete(id string, metadata *file.File) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil {
		return
	}
	switch tu.session.Status {
	case upload.StatusCompleted:
		return
	case upload.StatusCancelled, upload.StatusError:
		return
	}

	tu.session.Status = upload.StatusCompleted
	tu.session.Progress = 100
	tu.session.Metadata = metadata
	tu.session.Error = ""
}

// Fail records the error text. Failed sessions are never retried
// automatically; retry is a distinct user action.
func (t *UploadTracker) Fail(id string, errText string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil || tu.session.Status.Terminal() {
		return
	}
	tu.session.Status = upload.StatusError
	tu.session.Error = errText
}

// Cancel marks the session cancelled. The in-flight transfer is not
// aborted; cancellation is cooperative and best-effort only.
func (t *UploadTracker) Cancel(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil {
		return ErrUploadNotFound
	}
	if tu.session.Status.Terminal() {
		return nil
	}
	tu.session.Status = upload.StatusCancelled
	return nil
}

// Reset rearms a session for an explicit retry on the same id. This is
// the one sanctioned exit from a terminal state.
func (t *UploadTracker) Reset(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tu := t.lookup(id)
	if tu == nil {
		return ErrUploadNotFound
	}
	tu.session.Status = upload.StatusPending
	tu.session.Progress = 0
	tu.session.Error = ""
	tu.session.Metadata = nil
	return nil
}

// ClearCompleted removes completed and cancelled sessions; uploading
// and failed ones are preserved. Calling it twice is a no-op the
// second time.
func (t *UploadTracker) ClearCompleted() {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.sessions[:0]
	for _, tu := range t.sessions {
		switch tu.session.Status {
		case upload.StatusCompleted, upload.StatusCancelled:
		default:
			kept = append(kept, tu)
		}
	}
	t.sessions = kept
}

// ClearAll drops every session; used on teardown only.
func (t *UploadTracker) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessions = nil
}
