package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// ObjectStorage is the binary object store backing variant images:
// put/get/delete keyed by generated opaque filenames.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewObjectKey generates an opaque object key retaining the original
// file extension: <uuid><ext>.
func NewObjectKey(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}
