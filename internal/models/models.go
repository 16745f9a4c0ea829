// Package models defines the persisted data model of DebtKeeper: accounts
// (ledgers), lend/repayment transactions, process-wide settings and the
// Snapshot that bundles them into one durability unit.
package models

import "time"

// TransactionType is the variant of a Transaction.
type TransactionType string

const (
	TypeLend      TransactionType = "LEND"
	TypeRepayment TransactionType = "REPAYMENT"
)

// Account is a named ledger partition.
type Account struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AvatarColor string `json:"avatarColor"`
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// Transaction is a single lend or repayment event.
type Transaction struct {
	// ID is unique across the whole store, not just within an account.
	ID        string `json:"id"`
	AccountID string `json:"accountId"`

	// Borrower is a free-text counterparty; identity is string equality.
	Borrower string          `json:"borrower"`
	Amount   float64         `json:"amount"`
	Date     time.Time       `json:"date"`
	DueDate  *time.Time      `json:"dueDate,omitempty"`
	Type     TransactionType `json:"type"`
	Note     string          `json:"note"`
	Category string          `json:"category"`
	Tags     []string        `json:"tags,omitempty"`
}

// IsLend reports whether t increases the outstanding balance.
func (t Transaction) IsLend() bool { return t.Type != TypeRepayment }

// HasTag reports whether tag is one of t's tags.
func (t Transaction) HasTag(tag string) bool {
	for _, x := range t.Tags {
		if x == tag {
			return true
		}
	}
	return false
}

// Settings is process-wide configuration shared by all accounts.
type Settings struct {
	Currency   string   `json:"currency"`
	DateFormat string   `json:"dateFormat"`
	Language   Language `json:"language"`
	Categories []string `json:"categories"`
}

// HasCategory reports whether name is in the category list.
func (s Settings) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Language is one of the supported UI locales.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguageGerman     Language = "de"
	LanguagePortuguese Language = "pt"
	LanguageTurkish    Language = "tr"
	LanguageChinese    Language = "zh"
)

// SupportedLanguages lists every accepted Language.
var SupportedLanguages = []Language{
	LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman,
	LanguagePortuguese, LanguageTurkish, LanguageChinese,
}

// IsSupported reports whether l belongs to SupportedLanguages.
func (l Language) IsSupported() bool {
	for _, x := range SupportedLanguages {
		if x == l {
			return true
		}
	}
	return false
}
