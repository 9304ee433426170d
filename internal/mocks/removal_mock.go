package mocks

import (
	"context"
	"time"

	"github.com/saransh1220/background-erase/internal/modules/removal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBackgroundRemover struct {
	mock.Mock
}

func (m *MockBackgroundRemover) RemoveBackground(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Get(ctx context.Context, req *domain.Request) ([]byte, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockResultCache) Set(ctx context.Context, req *domain.Request, output []byte, ttl time.Duration) error {
	args := m.Called(ctx, req, output, ttl)
	return args.Error(0)
}

type MockPreviewRenderer struct {
	mock.Mock
}

func (m *MockPreviewRenderer) Render(output []byte, path string) error {
	args := m.Called(output, path)
	return args.Error(0)
}
