package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"bare name", "input.jpg", "input.jpg", false},
		{"relative", "./photos/input.jpg", "input.jpg", false},
		{"absolute", "/tmp/photos/cat.png", "cat.png", false},
		{"no extension", "photos/README", "README", false},
		{"empty", "", "", true},
		{"trailing separator", "photos/", "", true},
		{"root", "/", "", true},
		{"dot", ".", "", true},
		{"dot dot", "photos/..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileName(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"cutout.png", "image/png"},
		{"sticker.webp", "image/webp"},
		{"scan.tiff", "image/tiff"},
		{"report.pdf", "application/pdf"},
		{"photo", DefaultContentType},
		{"photo.unknownext", DefaultContentType},
		{".hidden", DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeFor(tt.file))
		})
	}
}

func TestRemoteError(t *testing.T) {
	err := error(&RemoteError{StatusCode: 403, Status: "Forbidden", Body: "forbidden"})
	assert.Equal(t, "remote error: 403 Forbidden: forbidden", err.Error())
	assert.True(t, IsRemote(err))

	empty := &RemoteError{StatusCode: 502, Status: "Bad Gateway"}
	assert.Equal(t, "remote error: 502 Bad Gateway", empty.Error())

	assert.False(t, IsRemote(ErrNetwork))
}

func TestResponse_OK(t *testing.T) {
	assert.True(t, (&Response{StatusCode: 200}).OK())
	assert.False(t, (&Response{StatusCode: 201}).OK())
	assert.False(t, (&Response{StatusCode: 403}).OK())
}
