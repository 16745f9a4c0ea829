package views

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel is the group key of transactions without a category.
const UncategorizedLabel = "Uncategorized"

// Group is a keyed list of transactions with its balance.
type Group struct {
	Key          string
	Transactions []models.Transaction
	Lent         decimal.Decimal
	Repaid       decimal.Decimal
	Balance      decimal.Decimal
}

// Point is one day of a running balance series.
type Point struct {
	Date    time.Time
	Balance decimal.Decimal
}

// RunningBalance returns the cumulative outstanding balance at the end of
// each day that has transactions, oldest first.
func RunningBalance(txs []models.Transaction) []Point {
	sorted := append([]models.Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var out []Point
	var bal decimal.Decimal
	for _, t := range sorted {
		if t.IsLend() {
			bal = bal.Add(amount(t))
		} else {
			bal = bal.Sub(amount(t))
		}
		y, m, d := t.Date.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if n := len(out); n > 0 && out[n-1].Date.Equal(day) {
			out[n-1].Balance = bal
			continue
		}
		out = append(out, Point{Date: day, Balance: bal})
	}
	return out
}

// ByMonth groups txs by calendar month ("2006-01"), newest month first.
// Transactions inside a group are newest first.
func ByMonth(txs []models.Transaction) []Group {
	groups := group(txs, func(t models.Transaction) string {
		return t.Date.UTC().Format("2006-01")
	})
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key > groups[j].Key })
	return groups
}

// ByCategory groups txs by category in alphabetical order. Transactions
// without a category are grouped under UncategorizedLabel.
func ByCategory(txs []models.Transaction) []Group {
	groups := group(txs, func(t models.Transaction) string {
		if t.Category == "" {
			return UncategorizedLabel
		}
		return t.Category
	})
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

func group(txs []models.Transaction, key func(models.Transaction) string) []Group {
	idx := make(map[string]int)
	var out []Group
	for _, t := range txs {
		k := key(t)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Group{Key: k})
		}
		g := &out[i]
		g.Transactions = append(g.Transactions, t)
		if t.IsLend() {
			g.Lent = g.Lent.Add(amount(t))
		} else {
			g.Repaid = g.Repaid.Add(amount(t))
		}
	}
	for i := range out {
		out[i].Balance = out[i].Lent.Sub(out[i].Repaid)
		sortNewestFirst(out[i].Transactions)
	}
	return out
}
