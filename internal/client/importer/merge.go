// Package importer turns external files into merge requests and merges them
// into a Snapshot.
//
// Merging is keyed by transaction id: an imported transaction whose id
// already exists replaces the stored one, a transaction without id gets a
// fresh one, and a transaction without (or with an unknown) account goes to
// the active account. Re-importing an exported file is therefore a no-op on
// content.
package importer

import (
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/idgen"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// ImportedAccountName names imported accounts that carry no name.
const ImportedAccountName = "Imported"

// Request is the parsed content of an import file. Transaction.ID and
// Transaction.AccountID may be empty.
type Request struct {
	Transactions []models.Transaction
	Accounts     []models.Account
}

// Result summarizes a merge.
type Result struct {
	Imported      int
	Added         int
	Replaced      int
	AccountsAdded int
}

// Merge returns s with req merged in. s is not modified.
func Merge(s models.Snapshot, req Request, gen idgen.Generator) (models.Snapshot, Result) {
	out := s.Clone()
	var res Result

	for _, a := range req.Accounts {
		if a.ID != "" && out.HasAccount(a.ID) {
			continue
		}
		if a.ID == "" {
			a.ID = gen.NewID()
		}
		a.Name = strings.TrimSpace(a.Name)
		if a.Name == "" {
			a.Name = ImportedAccountName
		}
		a.IsDefault = false
		out.Accounts = append(out.Accounts, a)
		res.AccountsAdded++
	}

	index := make(map[string]int, len(out.Transactions))
	for i, t := range out.Transactions {
		if t.ID != "" {
			index[t.ID] = i
		}
	}

	for _, t := range req.Transactions {
		t = t.Clone()
		if t.ID == "" {
			t.ID = gen.NewID()
		}
		if t.AccountID == "" || !out.HasAccount(t.AccountID) {
			t.AccountID = out.CurrentAccountID
		}
		t.Borrower = strings.TrimSpace(t.Borrower)
		t.Category = strings.TrimSpace(t.Category)
		t.Tags = models.NormalizeTags(t.Tags)
		t.Date = t.Date.UTC()
		if t.DueDate != nil && t.DueDate.IsZero() {
			t.DueDate = nil
		} else if t.DueDate != nil {
			d := t.DueDate.UTC()
			t.DueDate = &d
		}
		if t.Type != models.TypeRepayment {
			t.Type = models.TypeLend
		}

		if i, ok := index[t.ID]; ok {
			out.Transactions[i] = t
			res.Replaced++
		} else {
			index[t.ID] = len(out.Transactions)
			out.Transactions = append(out.Transactions, t)
			res.Added++
		}
		res.Imported++
	}

	return out, res
}
