package domain

import (
	"context"
	"io"
	"time"
)

// BackgroundRemover sends one request to the removal API.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, req *Request) (*Response, error)
}

// ResultCache stores successful outputs keyed by the request content.
// Implementations may be backed by Redis or anything else.
type ResultCache interface {
	Get(ctx context.Context, req *Request) ([]byte, bool, error)
	Set(ctx context.Context, req *Request, output []byte, ttl time.Duration) error
}

// ResultWriter persists the output image at a destination and returns where it ended up.
type ResultWriter interface {
	Save(ctx context.Context, dest string, file io.Reader, contentType string) (string, error)
}

// PreviewRenderer writes a downscaled copy of the output image.
type PreviewRenderer interface {
	Render(output []byte, path string) error
}
