package domain

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// imageTypes pins the common image extensions so the result does not depend
// on the mime.types files installed on the host.
var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
}

// FileName returns the last element of path. A path that is empty, ends in a
// separator or names a directory reference has no file name.
func FileName(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q has no file name", ErrInvalidPath, path)
	}

	name := filepath.Base(path)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q has no file name", ErrInvalidPath, path)
	}
	return name, nil
}

// ContentTypeFor infers the media type from the file name's extension.
func ContentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultContentType
	}
	if ct, ok := imageTypes[ext]; ok {
		return ct
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		// Drop parameters such as charset=utf-8.
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return DefaultContentType
}
