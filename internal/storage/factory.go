package storage

import (
	"context"

	"github.com/C-Senanayake/CVision/internal/config"
)

// NewBlobStore creates the blob store used for raw CV bytes and makes
// sure its bucket exists.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - cfg: storage configuration including endpoint, credentials, and bucket.
// Returns:
//   - BlobStore: initialized storage client implementation.
//   - error: non-nil if the storage client or bucket cannot be set up.
func NewBlobStore(ctx context.Context, cfg *config.StorageConfig) (BlobStore, error) {
	store, err := NewS3Store(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
