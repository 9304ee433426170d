package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements FileStorage interface using local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local filesystem storage. Keys are resolved
// against basePath unless they are absolute; an empty basePath means the
// working directory.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if basePath != "" {
		// Ensure directory exists
		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// UploadFile writes a file to local filesystem, replacing any existing one
func (l *LocalStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	fullPath := l.resolve(key)

	// Ensure directory exists
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	// Create or truncate file
	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	// Copy content
	if _, err := io.Copy(outFile, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := outFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return fullPath, nil
}

func (l *LocalStorage) resolve(key string) string {
	if filepath.IsAbs(key) || l.basePath == "" {
		return filepath.Clean(key)
	}
	return filepath.Join(l.basePath, key)
}
