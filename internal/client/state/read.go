package state

import "github.com/dmitrijs2005/debtkeeper/internal/models"

// Snapshot returns a deep copy of the current content.
func (c *Cache) Snapshot() models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.Clone()
}

// ActiveAccount returns the active account.
func (c *Cache) ActiveAccount() models.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, _ := c.snap.Account(c.snap.CurrentAccountID)
	return a
}

// ActiveTransactions returns the active account's transactions.
func (c *Cache) ActiveTransactions() []models.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.TransactionsFor(c.snap.CurrentAccountID)
}

// Settings returns a copy of the settings.
func (c *Cache) Settings() models.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.snap.Settings
	s.Categories = append([]string(nil), s.Categories...)
	return s
}
