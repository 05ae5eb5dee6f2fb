package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Package storage contains the object storage abstraction the portal reads
// participant configuration and data listings from.
// Implementations must avoid using local disk and rely on streaming I/O only.

// ErrNotFound is returned when the bucket or object does not exist.
var ErrNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ListOptions narrows a listing.
// StartOffset is the exclusive start marker; names at or after EndOffset are dropped.
// Empty offsets leave that side unbounded.
type ListOptions struct {
	Prefix      string
	StartOffset string
	EndOffset   string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Bucket       string            `json:"bucket"`
	Key          string            `json:"name"`
	Size         int64             `json:"size"`
	ETag         string            `json:"etag,omitempty"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified time.Time         `json:"updated"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Storage is a multi-bucket, S3-compatible object storage client.
type Storage interface {
	// List returns the objects of a bucket in lexicographic key order.
	List(ctx context.Context, bucket string, opt ListOptions) ([]ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// Put uploads an object, replacing any existing object with the same key.
	Put(ctx context.Context, bucket, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, bucket, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// ReadText reads a whole object into a string.
func ReadText(ctx context.Context, s Storage, bucket, key string) (string, error) {
	rc, _, err := s.Get(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("Error fetching gs://%s/%s error: %w", bucket, key, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("Error fetching gs://%s/%s error: %w", bucket, key, err)
	}
	return string(b), nil
}

// withinEnd reports whether key sorts before the exclusive end offset.
func withinEnd(key, end string) bool {
	return end == "" || key < end
}
