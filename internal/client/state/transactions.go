package state

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/client/importer"
	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// TransactionInput is user-entered transaction data.
type TransactionInput struct {
	Borrower string
	Amount   float64
	// Date defaults to now when zero.
	Date     time.Time
	DueDate  *time.Time
	Type     models.TransactionType
	Note     string
	Category string
	Tags     []string
}

func (c *Cache) normalize(in TransactionInput) (models.Transaction, error) {
	t := models.Transaction{
		Borrower: strings.TrimSpace(in.Borrower),
		Amount:   in.Amount,
		Date:     in.Date,
		Type:     in.Type,
		Note:     strings.TrimSpace(in.Note),
		Category: strings.TrimSpace(in.Category),
		Tags:     models.NormalizeTags(in.Tags),
	}
	if t.Borrower == "" {
		return t, fmt.Errorf("%w: borrower is required", common.ErrInvalidInput)
	}
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return t, fmt.Errorf("%w: amount must be a non-negative number", common.ErrInvalidInput)
	}
	switch t.Type {
	case "":
		t.Type = models.TypeLend
	case models.TypeLend, models.TypeRepayment:
	default:
		return t, fmt.Errorf("%w: unknown transaction type %q", common.ErrInvalidInput, t.Type)
	}
	if t.Date.IsZero() {
		t.Date = c.opts.Now()
	}
	t.Date = t.Date.UTC()
	if in.DueDate != nil && !in.DueDate.IsZero() {
		d := in.DueDate.UTC()
		t.DueDate = &d
	}
	return t, nil
}

// AddTransaction records a transaction in the active account.
func (c *Cache) AddTransaction(in TransactionInput) (models.Transaction, error) {
	t, err := c.normalize(in)
	if err != nil {
		return models.Transaction{}, err
	}
	err = c.mutate(func(s *models.Snapshot) error {
		t.ID = c.ids.NewID()
		t.AccountID = s.CurrentAccountID
		s.Transactions = append(s.Transactions, t)
		return nil
	})
	return t, err
}

// UpdateTransaction replaces the editable fields of a transaction; its id and
// account stay the same.
func (c *Cache) UpdateTransaction(id string, in TransactionInput) error {
	t, err := c.normalize(in)
	if err != nil {
		return err
	}
	return c.mutate(func(s *models.Snapshot) error {
		for i := range s.Transactions {
			if s.Transactions[i].ID != id {
				continue
			}
			t.ID = id
			t.AccountID = s.Transactions[i].AccountID
			s.Transactions[i] = t
			return nil
		}
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	})
}

// DeleteTransaction removes one transaction.
func (c *Cache) DeleteTransaction(id string) error {
	return c.mutate(func(s *models.Snapshot) error {
		for i := range s.Transactions {
			if s.Transactions[i].ID == id {
				s.Transactions = append(s.Transactions[:i], s.Transactions[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	})
}

// DeleteBorrower removes every transaction of borrower in the active account
// and returns how many were removed.
func (c *Cache) DeleteBorrower(borrower string) (int, error) {
	borrower = strings.TrimSpace(borrower)
	var n int
	err := c.mutate(func(s *models.Snapshot) error {
		n = removeWhere(s, func(t models.Transaction) bool {
			return t.AccountID == s.CurrentAccountID && t.Borrower == borrower
		})
		return nil
	})
	return n, err
}

// ClearAccountData removes every transaction of the active account.
func (c *Cache) ClearAccountData() (int, error) {
	var n int
	err := c.mutate(func(s *models.Snapshot) error {
		n = removeWhere(s, func(t models.Transaction) bool {
			return t.AccountID == s.CurrentAccountID
		})
		return nil
	})
	return n, err
}

func removeWhere(s *models.Snapshot, match func(models.Transaction) bool) int {
	kept := s.Transactions[:0]
	removed := 0
	for _, t := range s.Transactions {
		if match(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.Transactions = kept
	return removed
}

// Import merges req into the Snapshot.
func (c *Cache) Import(req importer.Request) (importer.Result, error) {
	var res importer.Result
	err := c.mutate(func(s *models.Snapshot) error {
		*s, res = importer.Merge(*s, req, c.ids)
		return nil
	})
	return res, err
}
