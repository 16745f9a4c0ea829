package views

import (
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// Summary aggregates a set of transactions.
type Summary struct {
	Lent        decimal.Decimal
	Repaid      decimal.Decimal
	Outstanding decimal.Decimal
	Count       int
	Borrowers   int
}

func amount(t models.Transaction) decimal.Decimal {
	return decimal.NewFromFloat(t.Amount)
}

// Totals sums LEND and REPAYMENT amounts of txs.
func Totals(txs []models.Transaction) Summary {
	var s Summary
	seen := make(map[string]struct{})
	for _, t := range txs {
		if t.IsLend() {
			s.Lent = s.Lent.Add(amount(t))
		} else {
			s.Repaid = s.Repaid.Add(amount(t))
		}
		seen[t.Borrower] = struct{}{}
		s.Count++
	}
	s.Outstanding = s.Lent.Sub(s.Repaid)
	s.Borrowers = len(seen)
	return s
}

// BorrowerBalance is the aggregate of one borrower.
type BorrowerBalance struct {
	Name    string
	Lent    decimal.Decimal
	Repaid  decimal.Decimal
	Balance decimal.Decimal
	Count   int
	Last    time.Time
}

// Borrowers aggregates txs per borrower, ordered by balance descending and
// then by name.
func Borrowers(txs []models.Transaction) []BorrowerBalance {
	idx := make(map[string]int)
	var out []BorrowerBalance
	for _, t := range txs {
		i, ok := idx[t.Borrower]
		if !ok {
			i = len(out)
			idx[t.Borrower] = i
			out = append(out, BorrowerBalance{Name: t.Borrower})
		}
		b := &out[i]
		if t.IsLend() {
			b.Lent = b.Lent.Add(amount(t))
		} else {
			b.Repaid = b.Repaid.Add(amount(t))
		}
		b.Count++
		if t.Date.After(b.Last) {
			b.Last = t.Date
		}
	}
	for i := range out {
		out[i].Balance = out[i].Lent.Sub(out[i].Repaid)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Balance.Cmp(out[j].Balance); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// BorrowerDetail returns the aggregate of one borrower and their
// transactions, newest first. ok is false when the borrower has none.
func BorrowerDetail(txs []models.Transaction, name string) (BorrowerBalance, []models.Transaction, bool) {
	name = strings.TrimSpace(name)
	var own []models.Transaction
	for _, t := range txs {
		if t.Borrower == name {
			own = append(own, t)
		}
	}
	if len(own) == 0 {
		return BorrowerBalance{Name: name}, nil, false
	}
	sortNewestFirst(own)
	return Borrowers(own)[0], own, true
}

// Share is one borrower's part of the total outstanding amount.
type Share struct {
	Name    string
	Balance decimal.Decimal
	Percent float64
}

// Distribution returns each borrower with a non-zero balance and its share of
// the sum of absolute balances, in Borrowers order.
func Distribution(txs []models.Transaction) []Share {
	var total decimal.Decimal
	var out []Share
	for _, b := range Borrowers(txs) {
		if b.Balance.IsZero() {
			continue
		}
		total = total.Add(b.Balance.Abs())
		out = append(out, Share{Name: b.Name, Balance: b.Balance})
	}
	for i := range out {
		pct, _ := out[i].Balance.Abs().Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		out[i].Percent = pct
	}
	return out
}

func sortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}
