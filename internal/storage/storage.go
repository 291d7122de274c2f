package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotConfigured is returned when no object store backs avatar uploads.
var ErrNotConfigured = errors.New("storage service not configured")

// Service keeps user avatar images in remote object storage.
type Service interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
