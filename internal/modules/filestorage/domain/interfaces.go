package domain

import (
	"context"
	"io"
)

// FileStorage defines the interface for writing result files
// This can be implemented by S3, MinIO, local filesystem, etc.
type FileStorage interface {
	// UploadFile writes the file under key and returns where it can be found
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
}
