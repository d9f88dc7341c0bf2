package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"resume-screener/internal/shared/util"
)

// ErrObjectNotFound is returned by Open when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore archives raw resume uploads.
type ObjectStore interface {
	// Save stores r under a fresh upload key and returns the key and bytes written.
	Save(ctx context.Context, fileName, contentType string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes the object. A missing key is not an error.
	Delete(ctx context.Context, storageKey string) error
}

// UploadKey builds the archive key for an upload: uploads/<unix-millis>-<sanitized name>.
func UploadKey(now time.Time, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join("uploads", fmt.Sprintf("%d-%s", now.UnixMilli(), sanitized)), nil
}
