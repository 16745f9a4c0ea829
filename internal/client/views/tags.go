package views

import (
	"sort"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// UntaggedTag is the bucket of transactions without tags.
const UntaggedTag = "Untagged"

// TagBalance is the aggregate of one tag.
type TagBalance struct {
	Tag     string
	Lent    decimal.Decimal
	Repaid  decimal.Decimal
	Balance decimal.Decimal
	Count   int
}

// Tags aggregates txs per tag. A transaction counts toward every tag it
// carries; untagged ones go to UntaggedTag. Ordered by balance descending
// and then by tag.
func Tags(txs []models.Transaction) []TagBalance {
	idx := make(map[string]int)
	var out []TagBalance
	add := func(tag string, t models.Transaction) {
		i, ok := idx[tag]
		if !ok {
			i = len(out)
			idx[tag] = i
			out = append(out, TagBalance{Tag: tag})
		}
		b := &out[i]
		if t.IsLend() {
			b.Lent = b.Lent.Add(amount(t))
		} else {
			b.Repaid = b.Repaid.Add(amount(t))
		}
		b.Count++
	}

	for _, t := range txs {
		if len(t.Tags) == 0 {
			add(UntaggedTag, t)
			continue
		}
		for _, tag := range t.Tags {
			add(tag, t)
		}
	}
	for i := range out {
		out[i].Balance = out[i].Lent.Sub(out[i].Repaid)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Balance.Cmp(out[j].Balance); c != 0 {
			return c > 0
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
