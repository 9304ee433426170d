package application

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/saransh1220/background-erase/internal/modules/filestorage/domain"
)

// BucketStorageFactory opens storage for a bucket on first use
type BucketStorageFactory func(ctx context.Context, bucket string) (domain.FileStorage, error)

// FileService routes results to the filesystem or to object storage
type FileService struct {
	local   domain.FileStorage
	factory BucketStorageFactory

	mu      sync.Mutex
	buckets map[string]domain.FileStorage
}

// NewFileService creates a new file service. factory may be nil, in which case
// s3:// destinations are rejected.
func NewFileService(local domain.FileStorage, factory BucketStorageFactory) *FileService {
	return &FileService{
		local:   local,
		factory: factory,
		buckets: make(map[string]domain.FileStorage),
	}
}

// Save writes file to dest, a filesystem path or s3://bucket/key
func (s *FileService) Save(ctx context.Context, dest string, file io.Reader, contentType string) (string, error) {
	d, err := domain.ParseDestination(dest)
	if err != nil {
		return "", err
	}
	if !d.IsS3() {
		return s.local.UploadFile(ctx, d.Key, file, contentType)
	}

	storage, err := s.bucket(ctx, d.Bucket)
	if err != nil {
		return "", err
	}
	return storage.UploadFile(ctx, d.Key, file, contentType)
}

func (s *FileService) bucket(ctx context.Context, name string) (domain.FileStorage, error) {
	if s.factory == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", domain.ErrInvalidDestination)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if storage, ok := s.buckets[name]; ok {
		return storage, nil
	}
	storage, err := s.factory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", name, err)
	}
	s.buckets[name] = storage
	return storage, nil
}
