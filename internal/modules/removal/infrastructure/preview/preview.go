package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Thumbnail renders a small PNG copy of the output image.
type Thumbnail struct {
	MaxWidth  int
	MaxHeight int
}

// NewThumbnail creates a renderer with the same bounds used for cover images (500x500).
func NewThumbnail() *Thumbnail {
	return &Thumbnail{MaxWidth: 500, MaxHeight: 500}
}

// Render decodes output, fits it into the bounds and writes it to path as PNG
// so the transparency produced by the API survives.
func (t *Thumbnail) Render(output []byte, path string) error {
	src, err := imaging.Decode(bytes.NewReader(output))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	dst := imaging.Fit(src, t.MaxWidth, t.MaxHeight, imaging.Lanczos)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, dst, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
