package util

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"cbt_backend/internal/config"

	"github.com/google/uuid"
)

// ValidateImageUpload enforces the upload policy: extension must be on the
// allow-list and the declared size within the configured cap. Contents are
// stored as received; no transcoding.
func ValidateImageUpload(fh *multipart.FileHeader, cfg *config.UploadConfig) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	allowed := false
	for _, a := range cfg.AllowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidFileType
	}
	if fh.Size > cfg.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// RandomFilename keeps the original extension but replaces the name with a
// fresh UUID, so uploads never collide and client-supplied names never touch
// the filesystem.
func RandomFilename(original string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(original))
}
