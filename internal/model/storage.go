package model

import (
	"context"
	"io"
)

// Storage writes objects to blob storage.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}
