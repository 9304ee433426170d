package api

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

const maxBoundaryAttempts = 3

// ErrBoundaryCollision is returned when every generated boundary occurs in the payload.
var ErrBoundaryCollision = errors.New("could not pick a boundary absent from the payload")

// newBoundary returns "----" followed by the hex digits of a random UUID.
var newBoundary = func() string {
	return "----" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Line breaks are percent-encoded so a name cannot end the header line.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"", "\r", "%0D", "\n", "%0A")

// MultipartBody is a fully assembled multipart/form-data payload with a single file part.
type MultipartBody struct {
	Boundary string
	Bytes    []byte
}

// ContentType returns the request Content-Type header value for the body.
func (b *MultipartBody) ContentType() string {
	return "multipart/form-data; boundary=" + b.Boundary
}

// NewMultipartBody frames data as the only part of a form, named field.
func NewMultipartBody(field, fileName, contentType string, data []byte) (*MultipartBody, error) {
	var boundary string
	for attempt := 0; ; attempt++ {
		if attempt == maxBoundaryAttempts {
			return nil, ErrBoundaryCollision
		}
		boundary = newBoundary()
		if !bytes.Contains(data, []byte(boundary)) {
			break
		}
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + 512)

	writer := multipart.NewWriter(&buf)
	if err := writer.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("set boundary: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)

	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return &MultipartBody{Boundary: boundary, Bytes: buf.Bytes()}, nil
}
