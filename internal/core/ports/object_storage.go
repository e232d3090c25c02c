// internal/core/ports/object_storage.go
package ports

import (
	"context"
	"io"
	"time"
)

// ObjectStorage stores archived receipts and inventory spreadsheets
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error

	// PresignGet returns a time-limited download link for key
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
