package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"team-files-api/config"
	"team-files-api/internal/domain/file"
)

func newClient(t *testing.T) *Client {
	t.Helper()

	c, err := New(context.Background(), zap.NewNop(), config.Local{
		Dir:     filepath.Join(t.TempDir(), "uploads"),
		BaseURL: "http://localhost:8080/static/",
	})
	require.NoError(t, err)
	return c
}

func TestClient_UploadAndDelete(t *testing.T) {
	c := newClient(t)

	var percents []int
	obj, err := c.Upload(
		context.Background(),
		strings.NewReader("file body"),
		int64(len("file body")),
		"files/owner/1_notes.txt",
		"text/plain",
		func(p int) { percents = append(percents, p) },
	)
	require.NoError(t, err)

	assert.Equal(t, "files/owner/1_notes.txt", obj.Key)
	assert.Equal(t, "http://localhost:8080/static/files/owner/1_notes.txt", obj.URL)

	b, err := os.ReadFile(filepath.Join(c.dir, "files", "owner", "1_notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "file body", string(b))

	require.NotEmpty(t, percents)
	assert.Equal(t, 100, percents[len(percents)-1])

	require.NoError(t, c.Delete(context.Background(), obj.Key))
	_, err = os.Stat(filepath.Join(c.dir, "files", "owner", "1_notes.txt"))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestClient_DeleteMissingSurfacesError(t *testing.T) {
	c := newClient(t)

	err := c.Delete(context.Background(), "files/owner/ghost.txt")
	require.Error(t, err)
}

func TestClient_Limits(t *testing.T) {
	c := newClient(t)

	assert.Equal(t, file.ProviderLocal, c.Provider())
	assert.Equal(t, int64(10<<20), c.MaxFileSize())
	assert.Contains(t, c.AllowedFormats(), "pdf")
	assert.NotContains(t, c.AllowedFormats(), "exe")
}
