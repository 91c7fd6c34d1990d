package directory

import (
	"context"

	"github.com/fluxbank/demo-bank/internal/models"
)

// ResolvedAccount pairs an account with its owning user
type ResolvedAccount struct {
	Account models.Account
	Owner   models.User
}

// ResolveByNumber returns the account matching the given account number and
// its owning user. Account numbers are generated without a uniqueness check,
// so the first match wins deterministically; a collision is a pre-existing
// data anomaly, not an error.
func (d *Directory) ResolveByNumber(ctx context.Context, accountNumber string) (*ResolvedAccount, error) {
	accounts, err := d.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.AccountNumber == accountNumber {
			owner, err := d.UserByEmail(ctx, account.UserEmail)
			if err != nil {
				return nil, err
			}
			return &ResolvedAccount{Account: account, Owner: *owner}, nil
		}
	}

	return nil, models.ErrNotFound
}

// AccountByID returns the account with the given ID
func (d *Directory) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	accounts, err := d.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.ID == id {
			return &account, nil
		}
	}

	return nil, models.ErrNotFound
}

// AccountsOf returns the accounts owned by the given user
func (d *Directory) AccountsOf(ctx context.Context, userEmail string) ([]models.Account, error) {
	accounts, err := d.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	var owned []models.Account
	for _, account := range accounts {
		if account.UserEmail == userEmail {
			owned = append(owned, account)
		}
	}
	return owned, nil
}

// UserByEmail returns the user registered under the given email
func (d *Directory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := d.Users(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, models.ErrNotFound
}
