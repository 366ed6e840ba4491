package storage

import (
	"context"
	"io"
)

// BlobStore is the interface for raw CV byte storage. Keys are produced
// by domain.Document.BlobKey and must round-trip unchanged.
type BlobStore interface {
	// Upload writes an object under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens the object stored under the given key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is stored under the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the object stored under the given key.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for an object, if the store exposes one.
	GetURL(key string) string
}

// DownloadBytes reads the full object into memory. CV files are small
// enough that buffering them whole is fine.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - store: blob store to read from.
//   - key: object key.
// Returns:
//   - []byte: full object contents.
//   - error: non-nil if the download or read fails.
func DownloadBytes(ctx context.Context, store BlobStore, key string) ([]byte, error) {
	rc, err := store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
