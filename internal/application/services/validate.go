package services

import (
	"errors"
	"fmt"
	"strings"

	"team-files-api/internal/domain/file"
)

var (
	ErrFileTooLarge      = errors.New("file is too large")
	ErrFileEmpty         = errors.New("file is empty")
	ErrMissingExtension  = errors.New("file extension is missing")
	ErrUnsupportedFormat = errors.New("file format is not supported by the storage provider")
)

// UploadLimits carries the active provider's constraints into
// validation. AllowedFormats empty means the provider imposes no
// format restriction of its own.
type UploadLimits struct {
	MaxSizeBytes   int64
	AllowedFormats []string
}

// FileCheck is the validation verdict. Err is nil iff Valid.
type FileCheck struct {
	Valid    bool
	Category file.Category
	Err      error
}

// ValidateFile classifies a candidate upload against the size and
// format constraints of the active provider. Pure function of its
// inputs; errors are returned, never thrown.
func ValidateFile(name string, size int64, limits UploadLimits) FileCheck {
	if limits.MaxSizeBytes > 0 && size > limits.MaxSizeBytes {
		return FileCheck{Err: fmt.Errorf("%w: maximum size %dMB", ErrFileTooLarge, limits.MaxSizeBytes>>20)}
	}
	if size == 0 {
		return FileCheck{Err: ErrFileEmpty}
	}

	ext := file.Extension(name)
	if ext == "" {
		return FileCheck{Err: ErrMissingExtension}
	}

	if len(limits.AllowedFormats) > 0 && !containsFormat(limits.AllowedFormats, ext) {
		return FileCheck{Err: fmt.Errorf(
			"%w: allowed formats: %s",
			ErrUnsupportedFormat,
			strings.Join(limits.AllowedFormats, ", "),
		)}
	}

	return FileCheck{Valid: true, Category: file.CategoryForExtension(ext)}
}

func containsFormat(formats []string, ext string) bool {
	for _, f := range formats {
		if strings.EqualFold(f, ext) {
			return true
		}
	}
	return false
}
