package storage

import (
	"context"
	"io"
)

// FileStorage is the opaque blob store used for report attachments:
// put a file, get a URL back. Anything that satisfies this can back it.
type FileStorage interface {
	// Upload stores a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for a stored path
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
