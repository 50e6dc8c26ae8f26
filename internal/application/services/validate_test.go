package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-files-api/internal/domain/file"
)

const mb = int64(1) << 20

func TestValidateFile_Table(t *testing.T) {
	noFormats := UploadLimits{MaxSizeBytes: 100 * mb}
	restricted := UploadLimits{
		MaxSizeBytes:   10 * mb,
		AllowedFormats: []string{"jpg", "jpeg", "png", "gif", "pdf", "doc", "docx", "txt", "zip"},
	}

	tests := []struct {
		name         string
		fileName     string
		size         int64
		limits       UploadLimits
		wantErr      error
		wantCategory file.Category
	}{
		{
			name:         "pdf classified as document",
			fileName:     "report.pdf",
			size:         mb,
			limits:       noFormats,
			wantCategory: file.CategoryDocument,
		},
		{
			name:         "uppercase extension classified case-insensitively",
			fileName:     "photo.PNG",
			size:         mb,
			limits:       noFormats,
			wantCategory: file.CategoryImage,
		},
		{
			name:         "csv classified as spreadsheet",
			fileName:     "data.csv",
			size:         mb,
			limits:       noFormats,
			wantCategory: file.CategorySpreadsheet,
		},
		{
			name:         "pptx classified as presentation",
			fileName:     "deck.pptx",
			size:         mb,
			limits:       noFormats,
			wantCategory: file.CategoryPresentation,
		},
		{
			name:         "unknown extension falls into other",
			fileName:     "archive.tar",
			size:         mb,
			limits:       noFormats,
			wantCategory: file.CategoryOther,
		},
		{
			name:     "too large rejected first",
			fileName: "huge.pdf",
			size:     101 * mb,
			limits:   noFormats,
			wantErr:  ErrFileTooLarge,
		},
		{
			name:     "empty file rejected",
			fileName: "empty.pdf",
			size:     0,
			limits:   noFormats,
			wantErr:  ErrFileEmpty,
		},
		{
			name:     "missing extension rejected",
			fileName: "README",
			size:     mb,
			limits:   noFormats,
			wantErr:  ErrMissingExtension,
		},
		{
			name:     "trailing dot counts as missing extension",
			fileName: "notes.",
			size:     mb,
			limits:   noFormats,
			wantErr:  ErrMissingExtension,
		},
		{
			name:     "format outside provider allow-list rejected",
			fileName: "movie.mp4",
			size:     mb,
			limits:   restricted,
			wantErr:  ErrUnsupportedFormat,
		},
		{
			name:         "allow-listed format accepted even when category is other",
			fileName:     "bundle.zip",
			size:         mb,
			limits:       restricted,
			wantCategory: file.CategoryOther,
		},
		{
			name:     "provider size limit checked before format",
			fileName: "movie.mp4",
			size:     11 * mb,
			limits:   restricted,
			wantErr:  ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFile(tt.fileName, tt.size, tt.limits)

			if tt.wantErr != nil {
				require.False(t, got.Valid)
				require.ErrorIs(t, got.Err, tt.wantErr)
				return
			}

			require.True(t, got.Valid)
			require.NoError(t, got.Err)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestValidateFile_ErrorMessages(t *testing.T) {
	limits := UploadLimits{MaxSizeBytes: 10 * mb, AllowedFormats: []string{"jpg", "png"}}

	tooBig := ValidateFile("big.jpg", 20*mb, limits)
	require.Error(t, tooBig.Err)
	assert.Contains(t, tooBig.Err.Error(), "10MB")

	badFormat := ValidateFile("clip.avi", mb, limits)
	require.Error(t, badFormat.Err)
	assert.Contains(t, badFormat.Err.Error(), strings.Join(limits.AllowedFormats, ", "))
}

func TestValidateFile_NoSizeLimit(t *testing.T) {
	got := ValidateFile("anything.bin", 1<<40, UploadLimits{})
	require.True(t, got.Valid)
	assert.Equal(t, file.CategoryOther, got.Category)
}
