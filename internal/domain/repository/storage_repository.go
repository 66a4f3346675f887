package repository

import (
	"context"
	"io"
)

// StorageRepository defines the interface for remote object storage (s3:// URIs).
type StorageRepository interface {
	Open(ctx context.Context, profile, uri string) (io.ReadCloser, error)
	Upload(ctx context.Context, profile, localPath, uri string) (string, error)
}
