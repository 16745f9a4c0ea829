package views

import (
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// Query selects transactions. Zero fields match everything; To is inclusive
// of its whole day.
type Query struct {
	Text     string
	Type     models.TransactionType
	Borrower string
	Tag      string
	Category string
	From     time.Time
	To       time.Time
}

func (q Query) match(t models.Transaction) bool {
	if q.Type != "" && t.Type != q.Type {
		return false
	}
	if q.Borrower != "" && !strings.EqualFold(t.Borrower, q.Borrower) {
		return false
	}
	if q.Tag != "" && !t.HasTag(q.Tag) {
		return false
	}
	if q.Category != "" && t.Category != q.Category {
		return false
	}
	if !q.From.IsZero() && t.Date.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !t.Date.Before(q.To.AddDate(0, 0, 1)) {
		return false
	}
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		hay := strings.ToLower(strings.Join(append([]string{t.Borrower, t.Note, t.Category}, t.Tags...), "\x00"))
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	return true
}

// Filter returns the transactions matching q, newest first.
func Filter(txs []models.Transaction, q Query) []models.Transaction {
	q.Text = strings.TrimSpace(q.Text)
	var out []models.Transaction
	for _, t := range txs {
		if q.match(t) {
			out = append(out, t)
		}
	}
	sortNewestFirst(out)
	return out
}

// Reminder is a lend that is due soon or overdue.
type Reminder struct {
	Transaction models.Transaction
	DaysLeft    int
	Overdue     bool
}

// Upcoming returns LEND transactions due within window of now, overdue ones
// included, whose borrower still has a positive balance. Earliest due first.
func Upcoming(txs []models.Transaction, now time.Time, window time.Duration) []Reminder {
	owing := make(map[string]bool)
	for _, b := range Borrowers(txs) {
		owing[b.Name] = b.Balance.IsPositive()
	}

	limit := now.Add(window)
	var out []Reminder
	for _, t := range txs {
		if !t.IsLend() || t.DueDate == nil || !owing[t.Borrower] {
			continue
		}
		if t.DueDate.After(limit) {
			continue
		}
		left := t.DueDate.Sub(now)
		out = append(out, Reminder{
			Transaction: t,
			DaysLeft:    int(left.Hours() / 24),
			Overdue:     left < 0,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Transaction.DueDate.Before(*out[j].Transaction.DueDate)
	})
	return out
}
