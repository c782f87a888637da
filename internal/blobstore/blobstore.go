// Package blobstore defines the binary-object capability the sync service
// uses for item images. Compression and format choice belong to the
// implementation, not to callers.
package blobstore

import (
	"context"
	"io"
)

type BlobStore interface {
	// Upload stores the image and returns its URL. Objects are keyed as
	// users/{userId}/images/{category}_{uniqueId}{ext}.
	Upload(ctx context.Context, userID, category, mimeType string, r io.Reader) (url string, err error)
	Get(ctx context.Context, url string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, url string) error
}
