// Package accounts persists the account (ledger) collection.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// Repository is whole-collection storage for accounts.
type Repository interface {
	// GetAll returns every account in insertion order.
	GetAll(ctx context.Context) ([]models.Account, error)

	// ReplaceAll deletes every stored account and inserts the given ones.
	// It is atomic only when the repository is bound to a transaction.
	ReplaceAll(ctx context.Context, accounts []models.Account) error

	// Insert adds a single account.
	Insert(ctx context.Context, a models.Account) error

	// Count returns the number of stored accounts.
	Count(ctx context.Context) (int, error)
}
