package directory

import (
	"context"

	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/fluxbank/demo-bank/internal/store"
)

// IdempotencyStore exposes the idempotency key collection as a lookup/store
// pair for the HTTP middleware.
type IdempotencyStore struct {
	dir *Directory
}

// NewIdempotencyStore creates an IdempotencyStore over the directory
func NewIdempotencyStore(dir *Directory) *IdempotencyStore {
	return &IdempotencyStore{dir: dir}
}

// Get returns the cached response for a key and path, nil when absent
func (s *IdempotencyStore) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	keys, err := getCollection[models.IdempotencyKey](ctx, s.dir.kv, store.CollectionIdempotencyKeys)
	if err != nil {
		return nil, err
	}
	for i := range keys {
		if keys[i].Key == key && keys[i].RequestPath == requestPath {
			return &keys[i], nil
		}
	}
	return nil, nil
}

// Store appends a cached response for later replay
func (s *IdempotencyStore) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	return s.dir.Update(ctx, func(ctx context.Context) error {
		keys, err := getCollection[models.IdempotencyKey](ctx, s.dir.kv, store.CollectionIdempotencyKeys)
		if err != nil {
			return err
		}
		return putCollection(ctx, s.dir.kv, store.CollectionIdempotencyKeys, append(keys, *idemKey))
	})
}
