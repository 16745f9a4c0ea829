package state

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// AvatarPalette is cycled through for accounts created without a color.
var AvatarPalette = []string{
	"#6366f1", "#ec4899", "#10b981", "#f59e0b", "#3b82f6", "#8b5cf6", "#ef4444", "#14b8a6",
}

// AddAccount creates an account. An empty color picks one from AvatarPalette.
func (c *Cache) AddAccount(name, color string) (models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Account{}, fmt.Errorf("%w: account name is required", common.ErrInvalidInput)
	}

	var acc models.Account
	err := c.mutate(func(s *models.Snapshot) error {
		color := strings.TrimSpace(color)
		if color == "" {
			color = AvatarPalette[len(s.Accounts)%len(AvatarPalette)]
		}
		acc = models.Account{ID: c.ids.NewID(), Name: name, AvatarColor: color}
		s.Accounts = append(s.Accounts, acc)
		return nil
	})
	return acc, err
}

// UpdateAccount renames and recolors an account. An empty color keeps the
// current one.
func (c *Cache) UpdateAccount(id, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: account name is required", common.ErrInvalidInput)
	}
	return c.mutate(func(s *models.Snapshot) error {
		for i := range s.Accounts {
			if s.Accounts[i].ID != id {
				continue
			}
			s.Accounts[i].Name = name
			if color = strings.TrimSpace(color); color != "" {
				s.Accounts[i].AvatarColor = color
			}
			return nil
		}
		return fmt.Errorf("%w: %s", common.ErrUnknownAccount, id)
	})
}

// DeleteAccount removes an account together with all of its transactions.
// When it was active, the first remaining account becomes active. The last
// account cannot be deleted.
func (c *Cache) DeleteAccount(id string) error {
	return c.mutate(func(s *models.Snapshot) error {
		if !s.HasAccount(id) {
			return fmt.Errorf("%w: %s", common.ErrUnknownAccount, id)
		}
		if len(s.Accounts) == 1 {
			return common.ErrLastAccount
		}

		accounts := s.Accounts[:0]
		for _, a := range s.Accounts {
			if a.ID != id {
				accounts = append(accounts, a)
			}
		}
		s.Accounts = accounts

		txs := s.Transactions[:0]
		for _, t := range s.Transactions {
			if t.AccountID != id {
				txs = append(txs, t)
			}
		}
		s.Transactions = txs

		if s.CurrentAccountID == id {
			s.CurrentAccountID = s.Accounts[0].ID
		}
		return nil
	})
}

// SwitchAccount makes id the active account.
func (c *Cache) SwitchAccount(id string) error {
	return c.mutate(func(s *models.Snapshot) error {
		if !s.HasAccount(id) {
			return fmt.Errorf("%w: %s", common.ErrUnknownAccount, id)
		}
		s.CurrentAccountID = id
		return nil
	})
}
