package filestorage

import (
	"context"
	"fmt"

	"github.com/saransh1220/background-erase/internal/modules/filestorage/application"
	"github.com/saransh1220/background-erase/internal/modules/filestorage/domain"
	"github.com/saransh1220/background-erase/internal/modules/filestorage/infrastructure/local"
	"github.com/saransh1220/background-erase/internal/modules/filestorage/infrastructure/s3"
	"github.com/saransh1220/background-erase/internal/shared/infrastructure/config"
)

// Module represents the FileStorage module
type Module struct {
	service *application.FileService
}

// NewModule creates and initializes the FileStorage module
func NewModule(ctx context.Context, cfg config.FileStorageConfig) (*Module, error) {
	localStorage, err := local.NewLocalStorage(cfg.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	// S3 clients are only built when an s3:// destination shows up
	factory := func(ctx context.Context, bucket string) (domain.FileStorage, error) {
		storage, err := s3.NewS3Storage(ctx, s3.S3Config{
			BucketName: bucket,
			Region:     cfg.S3Region,
			Endpoint:   cfg.S3Endpoint,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			UseSSL:     cfg.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return storage, nil
	}

	return &Module{
		service: application.NewFileService(localStorage, factory),
	}, nil
}

// Service returns the file service for use by other modules
func (m *Module) Service() *application.FileService {
	return m.service
}
