package importer

import (
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/idgen"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqGen() idgen.Generator {
	n := 0
	return idgen.Func(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	})
}

func base() models.Snapshot {
	s := models.DefaultSnapshot()
	s.Accounts = append(s.Accounts, models.Account{ID: "a1", Name: "A"})
	s.Transactions = []models.Transaction{
		{ID: "t1", AccountID: "a1", Borrower: "Bob", Amount: 50, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Type: models.TypeLend},
		{ID: "t2", AccountID: models.DefaultAccountID, Borrower: "Eve", Amount: 20, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Type: models.TypeLend},
	}
	return s
}

func TestMerge_SameIDReplaces(t *testing.T) {
	s := base()
	req := Request{Transactions: []models.Transaction{
		{ID: "t1", AccountID: "a1", Borrower: "Bob", Amount: 75, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}

	out, res := Merge(s, req, seqGen())

	assert.Equal(t, Result{Imported: 1, Replaced: 1}, res)
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, "t1", out.Transactions[0].ID)
	assert.Equal(t, 75.0, out.Transactions[0].Amount)

	// the input snapshot is untouched
	assert.Equal(t, 50.0, s.Transactions[0].Amount)
}

func TestMerge_MissingIDAndAccount(t *testing.T) {
	s := base()
	s.CurrentAccountID = "a1"
	req := Request{Transactions: []models.Transaction{
		{Borrower: "New", Amount: 5},
		{ID: "x", AccountID: "ghost", Borrower: "Lost", Amount: 1},
	}}

	out, res := Merge(s, req, seqGen())

	assert.Equal(t, Result{Imported: 2, Added: 2}, res)
	require.Len(t, out.Transactions, 4)
	assert.Equal(t, "gen-1", out.Transactions[2].ID)
	assert.Equal(t, "a1", out.Transactions[2].AccountID)
	assert.Equal(t, "a1", out.Transactions[3].AccountID)
	assert.Equal(t, models.TypeLend, out.Transactions[2].Type)
	require.NoError(t, out.Validate())
}

func TestMerge_ZeroDueDateDropped(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	due := time.Date(2024, 5, 1, 3, 0, 0, 0, loc)
	req := Request{Transactions: []models.Transaction{
		{ID: "z", Borrower: "Zed", Amount: 1, DueDate: &time.Time{}},
		{ID: "d", Borrower: "Dan", Amount: 1, DueDate: &due},
	}}

	out, _ := Merge(base(), req, seqGen())

	require.Len(t, out.Transactions, 4)
	assert.Nil(t, out.Transactions[2].DueDate)
	require.NotNil(t, out.Transactions[3].DueDate)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *out.Transactions[3].DueDate)
	assert.Equal(t, time.UTC, out.Transactions[3].DueDate.Location())
}

func TestMerge_AccountsDedupByIDOnly(t *testing.T) {
	s := base()
	req := Request{
		Accounts: []models.Account{
			{ID: "a1", Name: "Renamed"},
			{ID: "a2", Name: "A"},
			{Name: "  "},
		},
		Transactions: []models.Transaction{{ID: "t9", AccountID: "a2", Borrower: "Z"}},
	}

	out, res := Merge(s, req, seqGen())

	assert.Equal(t, 2, res.AccountsAdded)
	require.Len(t, out.Accounts, 4)
	assert.Equal(t, "A", out.Accounts[1].Name, "existing account is not overwritten")
	assert.Equal(t, "a2", out.Accounts[2].ID)
	assert.Equal(t, "A", out.Accounts[2].Name, "same name, different id is a new account")
	assert.Equal(t, ImportedAccountName, out.Accounts[3].Name)
	assert.Equal(t, "a2", out.Transactions[2].AccountID)
}

func TestMerge_DuplicateIDsWithinImport(t *testing.T) {
	out, res := Merge(base(), Request{Transactions: []models.Transaction{
		{ID: "n", Borrower: "first", Amount: 1},
		{ID: "n", Borrower: "second", Amount: 2},
	}}, seqGen())

	assert.Equal(t, Result{Imported: 2, Added: 1, Replaced: 1}, res)
	require.Len(t, out.Transactions, 3)
	assert.Equal(t, "second", out.Transactions[2].Borrower)
}

func TestMerge_ReimportIsIdempotent(t *testing.T) {
	s := base()
	req := Request{Transactions: []models.Transaction{
		{ID: "i1", AccountID: "a1", Borrower: "Kim", Amount: 10, Date: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), Tags: []string{"x"}},
		{ID: "i2", AccountID: "a1", Borrower: "Kim", Amount: 4, Date: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), Type: models.TypeRepayment},
	}}

	once, _ := Merge(s, req, seqGen())
	twice, res := Merge(once, req, seqGen())

	assert.Equal(t, once, twice)
	assert.Equal(t, 2, res.Replaced)
}
