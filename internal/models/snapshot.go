package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
)

// Seed values used when storage is empty.
const (
	DefaultAccountID    = "default"
	DefaultAccountName  = "Personal"
	DefaultAccountColor = "#6366f1"
)

// DefaultCategories is the fixed seed category list.
var DefaultCategories = []string{
	"Personal", "Family", "Friends", "Business", "Emergency",
	"Medical", "Education", "Travel", "Other",
}

// Snapshot is the complete persisted application state. It is loaded and
// flushed as one unit; there is no smaller durable unit.
type Snapshot struct {
	Accounts         []Account     `json:"accounts"`
	CurrentAccountID string        `json:"currentAccountId"`
	Transactions     []Transaction `json:"transactions"`
	Settings         Settings      `json:"settings"`
}

// DefaultAccount returns the seed account.
func DefaultAccount() Account {
	return Account{
		ID:          DefaultAccountID,
		Name:        DefaultAccountName,
		AvatarColor: DefaultAccountColor,
		IsDefault:   true,
	}
}

// DefaultSettings returns first-run settings.
func DefaultSettings() Settings {
	return Settings{
		Currency:   "$",
		DateFormat: "MM/DD/YYYY",
		Language:   LanguageEnglish,
		Categories: append([]string(nil), DefaultCategories...),
	}
}

// DefaultSnapshot returns the state written on first run: one seed account,
// no transactions and default settings.
func DefaultSnapshot() Snapshot {
	acc := DefaultAccount()
	return Snapshot{
		Accounts:         []Account{acc},
		CurrentAccountID: acc.ID,
		Settings:         DefaultSettings(),
	}
}

// MarshalJSON encodes nil collections as empty arrays so that two snapshots
// with the same content always serialize to the same bytes.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	p := plain(s)
	if p.Accounts == nil {
		p.Accounts = []Account{}
	}
	if p.Transactions == nil {
		p.Transactions = []Transaction{}
	}
	if p.Settings.Categories == nil {
		p.Settings.Categories = []string{}
	}
	return json.Marshal(p)
}

// Serialize returns the canonical byte form used for change detection and
// for crossing the gateway boundary.
func (s Snapshot) Serialize() ([]byte, error) {
	return json.Marshal(s)
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{CurrentAccountID: s.CurrentAccountID}
	if s.Accounts != nil {
		out.Accounts = append([]Account(nil), s.Accounts...)
	}
	if s.Transactions != nil {
		out.Transactions = make([]Transaction, len(s.Transactions))
		for i, t := range s.Transactions {
			out.Transactions[i] = t.Clone()
		}
	}
	out.Settings = s.Settings
	if s.Settings.Categories != nil {
		out.Settings.Categories = append([]string(nil), s.Settings.Categories...)
	}
	return out
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	return t
}

// Account returns the account with the given id.
func (s Snapshot) Account(id string) (Account, bool) {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// HasAccount reports whether an account with id exists.
func (s Snapshot) HasAccount(id string) bool {
	_, ok := s.Account(id)
	return ok
}

// TransactionsFor returns the transactions owned by accountID, in stored order.
func (s Snapshot) TransactionsFor(accountID string) []Transaction {
	var out []Transaction
	for _, t := range s.Transactions {
		if t.AccountID == accountID {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Validate checks the invariants every flushed snapshot must satisfy.
func (s Snapshot) Validate() error {
	return s.validate(true)
}

// ValidateStored is Validate for snapshots read back from storage: legacy
// transactions without an id are accepted so the load-time migration can
// assign one.
func (s Snapshot) ValidateStored() error {
	return s.validate(false)
}

func (s Snapshot) validate(requireTxIDs bool) error {
	if len(s.Accounts) == 0 {
		return fmt.Errorf("%w: no accounts", common.ErrInvalidSnapshot)
	}

	accounts := make(map[string]struct{}, len(s.Accounts))
	for _, a := range s.Accounts {
		if a.ID == "" {
			return fmt.Errorf("%w: account without id", common.ErrInvalidSnapshot)
		}
		if _, dup := accounts[a.ID]; dup {
			return fmt.Errorf("%w: duplicate account id %q", common.ErrInvalidSnapshot, a.ID)
		}
		accounts[a.ID] = struct{}{}
	}

	if _, ok := accounts[s.CurrentAccountID]; !ok {
		return fmt.Errorf("%w: current account %q does not exist", common.ErrInvalidSnapshot, s.CurrentAccountID)
	}

	txs := make(map[string]struct{}, len(s.Transactions))
	for _, t := range s.Transactions {
		if t.ID == "" && requireTxIDs {
			return fmt.Errorf("%w: transaction without id", common.ErrInvalidSnapshot)
		}
		if t.ID != "" {
			if _, dup := txs[t.ID]; dup {
				return fmt.Errorf("%w: duplicate transaction id %q", common.ErrInvalidSnapshot, t.ID)
			}
			txs[t.ID] = struct{}{}
		}
		if _, ok := accounts[t.AccountID]; !ok {
			return fmt.Errorf("%w: transaction %q references unknown account %q", common.ErrInvalidSnapshot, t.ID, t.AccountID)
		}
	}
	return nil
}

// NormalizeTags trims tags, drops empty ones and removes duplicates while
// keeping first-seen order. It returns nil when no tag remains.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// NormalizeCategories trims and deduplicates a category list. Unlike
// NormalizeTags it always returns a non-nil slice.
func NormalizeCategories(categories []string) []string {
	out := NormalizeTags(categories)
	if out == nil {
		out = []string{}
	}
	return out
}
