package domain

import (
	"errors"
	"fmt"
	"strings"
)

const s3Scheme = "s3://"

var ErrInvalidDestination = errors.New("invalid destination")

// Destination is a parsed output location
type Destination struct {
	Bucket string // empty for the local filesystem
	Key    string
}

// IsS3 reports whether the destination is an object in a bucket
func (d Destination) IsS3() bool {
	return d.Bucket != ""
}

func (d Destination) String() string {
	if d.IsS3() {
		return s3Scheme + d.Bucket + "/" + d.Key
	}
	return d.Key
}

// ParseDestination accepts either a filesystem path or s3://bucket/key
func ParseDestination(dest string) (Destination, error) {
	if dest == "" {
		return Destination{}, fmt.Errorf("%w: empty", ErrInvalidDestination)
	}
	if !strings.HasPrefix(dest, s3Scheme) {
		return Destination{Key: dest}, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(dest, s3Scheme), "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Destination{}, fmt.Errorf("%w: %q must look like s3://bucket/key", ErrInvalidDestination, dest)
	}
	return Destination{Bucket: bucket, Key: key}, nil
}
