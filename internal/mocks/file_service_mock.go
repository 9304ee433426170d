package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockResultWriter is a mock implementation of the file service used to save results
type MockResultWriter struct {
	mock.Mock
}

func (m *MockResultWriter) Save(ctx context.Context, dest string, file io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, dest, file, contentType)
	return args.String(0), args.Error(1)
}
