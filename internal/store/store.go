// Package store provides key-value persistence backends for the directory
// store. Each collection is stored as a JSON-encoded array of records under
// a fixed name; two scalar flags sit alongside the collections.
package store

import "context"

// Collection names and scalar flag keys. These are part of the persisted
// layout and must not change.
const (
	CollectionUsers            = "users"
	CollectionAccounts         = "accounts"
	CollectionCards            = "cards"
	CollectionCardApplications = "cardApplications"
	CollectionTransactions     = "transactions"
	CollectionMoneyRequests    = "moneyRequests"
	CollectionBankLogs         = "bankLogs"
	CollectionIdempotencyKeys  = "idempotencyKeys"

	KeyCurrentUserEmail = "currentUserEmail"
	KeyDarkMode         = "darkMode"
)

// KV is the interface all persistence backends implement. Implementations
// must be safe for concurrent use; cross-key atomicity is provided by the
// directory layer's write guard, not by the backend.
type KV interface {
	// Get returns the raw value stored under key, or models.ErrKeyNotFound
	// if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
