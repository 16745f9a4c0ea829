// Package transactions persists the lend/repayment collection.
//
// The storage engine has no array type, so a transaction's tag set is
// flattened into one text column joined by TagSeparator and split again on
// read. An empty column round-trips to "no tags" (a nil slice). Dates are
// stored as RFC 3339 text in UTC.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// Repository is whole-collection storage for transactions.
type Repository interface {
	// GetAll returns every transaction in insertion order. Rows written by
	// older releases may come back with an empty ID.
	GetAll(ctx context.Context) ([]models.Transaction, error)

	// ReplaceAll deletes every stored transaction and inserts the given ones.
	// It is atomic only when the repository is bound to a transaction.
	ReplaceAll(ctx context.Context, txs []models.Transaction) error

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int, error)
}
