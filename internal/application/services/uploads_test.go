package services

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-files-api/internal/domain/file"
	"team-files-api/internal/domain/upload"
	"team-files-api/internal/domain/user"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func uploader() *user.User {
	return &user.User{Name: "Jane Roe", Role: user.RoleEmployee}
}

func TestUploadTracker_BeginAndSessions(t *testing.T) {
	tr := NewUploadTracker()

	idA := tr.Begin(header("a.pdf", 10), uploader())
	idB := tr.Begin(header("b.png", 20), uploader())
	require.NotEqual(t, idA, idB)

	sessions := tr.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "a.pdf", sessions[0].FileName)
	assert.Equal(t, "b.png", sessions[1].FileName)
	assert.Equal(t, upload.StatusPending, sessions[0].Status)
	assert.Equal(t, 0, sessions[0].Progress)

	// snapshots are copies, mutating one must not leak back
	sessions[0].Progress = 55
	assert.Equal(t, 0, tr.Session(idA).Progress)
}

func TestUploadTracker_ProgressClamped(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"negative clamps to 0", -5, 0},
		{"in range kept", 42, 42},
		{"above 100 clamps to 100", 250, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tr := NewUploadTracker()
			id := tr.Begin(header("f.txt", 1), uploader())
			tr.MarkUploading(id)

			tr.UpdateProgress(id, tt.in)
			assert.Equal(t, tt.want, tr.Session(id).Progress)
		})
	}
}

func TestUploadTracker_TerminalStatesAreSticky(t *testing.T) {
	t.Run("late progress after completion ignored", func(t *testing.T) {
		tr := NewUploadTracker()
		id := tr.Begin(header("f.txt", 1), uploader())
		tr.Complete(id, &file.File{})

		tr.UpdateProgress(id, 10)
		s := tr.Session(id)
		assert.Equal(t, upload.StatusCompleted, s.Status)
		assert.Equal(t, 100, s.Progress)
	})

	t.Run("completion after cancel ignored", func(t *testing.T) {
		tr := NewUploadTracker()
		id := tr.Begin(header("f.txt", 1), uploader())
		require.NoError(t, tr.Cancel(id))

		tr.Complete(id, &file.File{})
		assert.Equal(t, upload.StatusCancelled, tr.Session(id).Status)
	})

	t.Run("fail after cancel ignored", func(t *testing.T) {
		tr := NewUploadTracker()
		id := tr.Begin(header("f.txt", 1), uploader())
		require.NoError(t, tr.Cancel(id))

		tr.Fail(id, "network down")
		s := tr.Session(id)
		assert.Equal(t, upload.StatusCancelled, s.Status)
		assert.Empty(t, s.Error)
	})

	t.Run("complete is idempotent", func(t *testing.T) {
		tr := NewUploadTracker()
		id := tr.Begin(header("f.txt", 1), uploader())
		meta := &file.File{OriginalName: "f.txt"}

		tr.Complete(id, meta)
		tr.Complete(id, &file.File{OriginalName: "other.txt"})

		s := tr.Session(id)
		assert.Equal(t, upload.StatusCompleted, s.Status)
		assert.Equal(t, "f.txt", s.Metadata.OriginalName)
	})
}

func TestUploadTracker_CancelUnknown(t *testing.T) {
	tr := NewUploadTracker()
	require.ErrorIs(t, tr.Cancel("nope"), ErrUploadNotFound)
}

func TestUploadTracker_CancelTerminalIsNoop(t *testing.T) {
	tr := NewUploadTracker()
	id := tr.Begin(header("f.txt", 1), uploader())
	tr.Complete(id, &file.File{})

	require.NoError(t, tr.Cancel(id))
	assert.Equal(t, upload.StatusCompleted, tr.Session(id).Status)
}

func TestUploadTracker_FailAndReset(t *testing.T) {
	tr := NewUploadTracker()
	id := tr.Begin(header("f.txt", 1), uploader())
	tr.MarkUploading(id)
	tr.UpdateProgress(id, 60)
	tr.Fail(id, "connection reset")

	s := tr.Session(id)
	require.Equal(t, upload.StatusError, s.Status)
	assert.Equal(t, "connection reset", s.Error)

	require.NoError(t, tr.Reset(id))
	s = tr.Session(id)
	assert.Equal(t, upload.StatusPending, s.Status)
	assert.Equal(t, 0, s.Progress)
	assert.Empty(t, s.Error)

	src, owner, err := tr.Source(id)
	require.NoError(t, err)
	assert.Equal(t, "f.txt", src.Filename)
	assert.Equal(t, "Jane Roe", owner.Name)
}

func TestUploadTracker_ClearCompleted(t *testing.T) {
	tr := NewUploadTracker()

	done := tr.Begin(header("done.txt", 1), uploader())
	tr.Complete(done, &file.File{})

	cancelled := tr.Begin(header("cancelled.txt", 1), uploader())
	require.NoError(t, tr.Cancel(cancelled))

	failed := tr.Begin(header("failed.txt", 1), uploader())
	tr.Fail(failed, "boom")

	active := tr.Begin(header("active.txt", 1), uploader())
	tr.MarkUploading(active)

	tr.ClearCompleted()

	sessions := tr.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "failed.txt", sessions[0].FileName)
	assert.Equal(t, "active.txt", sessions[1].FileName)

	// second run finds nothing else to remove
	tr.ClearCompleted()
	require.Len(t, tr.Sessions(), 2)
}

func TestUploadTracker_ClearAll(t *testing.T) {
	tr := NewUploadTracker()
	tr.Begin(header("a.txt", 1), uploader())
	tr.Begin(header("b.txt", 1), uploader())

	tr.ClearAll()
	assert.Empty(t, tr.Sessions())
}
