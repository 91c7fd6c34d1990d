// Package directory provides typed access to the flat persisted collections
// backing the bank: users, accounts, cards, card applications, transactions,
// money requests and the activity log.
//
// The underlying key-value backends are individually thread-safe, but every
// balance-affecting operation is a read-modify-write pass over whole
// collections. Update serializes those passes behind a single writer lock so
// that concurrent mutations cannot interleave and lose updates.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/fluxbank/demo-bank/internal/store"
)

// Directory wraps a KV backend with typed collection accessors
type Directory struct {
	mu sync.Mutex
	kv store.KV
}

// New creates a Directory over the given backend
func New(kv store.KV) *Directory {
	return &Directory{kv: kv}
}

// Update runs fn while holding the write guard. All read-modify-write spans
// must go through Update; plain reads may bypass it.
func (d *Directory) Update(ctx context.Context, fn func(ctx context.Context) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(ctx)
}

// Close flushes and closes the underlying backend
func (d *Directory) Close() error {
	return d.kv.Close()
}

func getCollection[T any](ctx context.Context, kv store.KV, name string) ([]T, error) {
	data, err := kv.Get(ctx, name)
	if errors.Is(err, models.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection %q: %w", name, err)
	}
	return records, nil
}

func putCollection[T any](ctx context.Context, kv store.KV, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", name, err)
	}
	return kv.Put(ctx, name, data)
}

// Users returns all registered users
func (d *Directory) Users(ctx context.Context) ([]models.User, error) {
	return getCollection[models.User](ctx, d.kv, store.CollectionUsers)
}

// SaveUsers replaces the users collection
func (d *Directory) SaveUsers(ctx context.Context, users []models.User) error {
	return putCollection(ctx, d.kv, store.CollectionUsers, users)
}

// Accounts returns all accounts across all users
func (d *Directory) Accounts(ctx context.Context) ([]models.Account, error) {
	return getCollection[models.Account](ctx, d.kv, store.CollectionAccounts)
}

// SaveAccounts replaces the accounts collection
func (d *Directory) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	return putCollection(ctx, d.kv, store.CollectionAccounts, accounts)
}

// Transactions returns the full transaction log
func (d *Directory) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return getCollection[models.Transaction](ctx, d.kv, store.CollectionTransactions)
}

// AppendTransactions appends records to the transaction log. Existing
// records are never rewritten.
func (d *Directory) AppendTransactions(ctx context.Context, records ...models.Transaction) error {
	existing, err := d.Transactions(ctx)
	if err != nil {
		return err
	}
	return putCollection(ctx, d.kv, store.CollectionTransactions, append(existing, records...))
}

// MoneyRequests returns all money requests
func (d *Directory) MoneyRequests(ctx context.Context) ([]models.MoneyRequest, error) {
	return getCollection[models.MoneyRequest](ctx, d.kv, store.CollectionMoneyRequests)
}

// SaveMoneyRequests replaces the money requests collection
func (d *Directory) SaveMoneyRequests(ctx context.Context, requests []models.MoneyRequest) error {
	return putCollection(ctx, d.kv, store.CollectionMoneyRequests, requests)
}

// Cards returns all issued cards
func (d *Directory) Cards(ctx context.Context) ([]models.Card, error) {
	return getCollection[models.Card](ctx, d.kv, store.CollectionCards)
}

// SaveCards replaces the cards collection
func (d *Directory) SaveCards(ctx context.Context, cards []models.Card) error {
	return putCollection(ctx, d.kv, store.CollectionCards, cards)
}

// CardApplications returns all card applications
func (d *Directory) CardApplications(ctx context.Context) ([]models.CardApplication, error) {
	return getCollection[models.CardApplication](ctx, d.kv, store.CollectionCardApplications)
}

// SaveCardApplications replaces the card applications collection
func (d *Directory) SaveCardApplications(ctx context.Context, apps []models.CardApplication) error {
	return putCollection(ctx, d.kv, store.CollectionCardApplications, apps)
}

// BankLogs returns the activity log, newest entry first
func (d *Directory) BankLogs(ctx context.Context) ([]models.LogEntry, error) {
	return getCollection[models.LogEntry](ctx, d.kv, store.CollectionBankLogs)
}

// SaveBankLogs replaces the activity log
func (d *Directory) SaveBankLogs(ctx context.Context, logs []models.LogEntry) error {
	return putCollection(ctx, d.kv, store.CollectionBankLogs, logs)
}

// CurrentUserEmail returns the signed-in user flag, empty if nobody is
// signed in
func (d *Directory) CurrentUserEmail(ctx context.Context) (string, error) {
	data, err := d.kv.Get(ctx, store.KeyCurrentUserEmail)
	if errors.Is(err, models.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var email string
	if err := json.Unmarshal(data, &email); err != nil {
		return "", fmt.Errorf("failed to decode current user flag: %w", err)
	}
	return email, nil
}

// SetCurrentUserEmail stores the signed-in user flag; an empty email clears it
func (d *Directory) SetCurrentUserEmail(ctx context.Context, email string) error {
	if email == "" {
		return d.kv.Delete(ctx, store.KeyCurrentUserEmail)
	}
	data, err := json.Marshal(email)
	if err != nil {
		return err
	}
	return d.kv.Put(ctx, store.KeyCurrentUserEmail, data)
}

// DarkMode returns the persisted UI theme flag. Nothing in this service
// interprets it; it is carried for compatibility with the stored layout.
func (d *Directory) DarkMode(ctx context.Context) (bool, error) {
	data, err := d.kv.Get(ctx, store.KeyDarkMode)
	if errors.Is(err, models.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var enabled bool
	if err := json.Unmarshal(data, &enabled); err != nil {
		return false, fmt.Errorf("failed to decode dark mode flag: %w", err)
	}
	return enabled, nil
}

// SetDarkMode stores the UI theme flag
func (d *Directory) SetDarkMode(ctx context.Context, enabled bool) error {
	data, err := json.Marshal(enabled)
	if err != nil {
		return err
	}
	return d.kv.Put(ctx, store.KeyDarkMode, data)
}
