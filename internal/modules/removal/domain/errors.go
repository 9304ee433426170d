package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath = errors.New("invalid source path")
	ErrIO          = errors.New("i/o error")
	ErrNetwork     = errors.New("network error")
)

// RemoteError is returned when the API answered with a non-200 status.
// It is a reported condition, not a fatal one.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote error: %d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("remote error: %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// IsRemote reports whether err carries a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
