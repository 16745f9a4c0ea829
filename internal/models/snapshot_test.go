package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return Snapshot{
		Accounts:         []Account{{ID: "a1", Name: "A", AvatarColor: "#fff"}},
		CurrentAccountID: "a1",
		Transactions: []Transaction{
			{ID: "t1", AccountID: "a1", Borrower: "Bob", Amount: 100, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), DueDate: &due, Type: TypeLend, Tags: []string{"x"}},
			{ID: "t2", AccountID: "a1", Borrower: "Bob", Amount: 40, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Type: TypeRepayment},
		},
		Settings: DefaultSettings(),
	}
}

func TestDefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot()

	require.Len(t, s.Accounts, 1)
	assert.Equal(t, DefaultAccountID, s.Accounts[0].ID)
	assert.Equal(t, DefaultAccountName, s.Accounts[0].Name)
	assert.True(t, s.Accounts[0].IsDefault)
	assert.Equal(t, s.Accounts[0].ID, s.CurrentAccountID)
	assert.Empty(t, s.Transactions)
	assert.Equal(t, DefaultCategories, s.Settings.Categories)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
		ok     bool
	}{
		{name: "valid", mutate: func(s *Snapshot) {}, ok: true},
		{name: "no accounts", mutate: func(s *Snapshot) { s.Accounts = nil }},
		{name: "empty account id", mutate: func(s *Snapshot) { s.Accounts = append(s.Accounts, Account{Name: "x"}) }},
		{name: "duplicate account id", mutate: func(s *Snapshot) { s.Accounts = append(s.Accounts, Account{ID: "a1"}) }},
		{name: "dangling pointer", mutate: func(s *Snapshot) { s.CurrentAccountID = "nope" }},
		{name: "missing transaction id", mutate: func(s *Snapshot) { s.Transactions[0].ID = "" }},
		{name: "duplicate transaction id", mutate: func(s *Snapshot) { s.Transactions[1].ID = "t1" }},
		{name: "dangling account reference", mutate: func(s *Snapshot) { s.Transactions[1].AccountID = "zzz" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSnapshot()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrInvalidSnapshot)
		})
	}
}

func TestValidateStored_AllowsLegacyTransactionsWithoutID(t *testing.T) {
	s := sampleSnapshot()
	s.Transactions[0].ID = ""
	s.Transactions = append(s.Transactions, Transaction{AccountID: "a1", Borrower: "Old"})

	require.ErrorIs(t, s.Validate(), common.ErrInvalidSnapshot)
	require.NoError(t, s.ValidateStored())

	dup := sampleSnapshot()
	dup.Transactions[1].ID = "t1"
	require.ErrorIs(t, dup.ValidateStored(), common.ErrInvalidSnapshot)

	dangling := sampleSnapshot()
	dangling.CurrentAccountID = "nope"
	require.ErrorIs(t, dangling.ValidateStored(), common.ErrInvalidSnapshot)
}

func TestClone_IsDeep(t *testing.T) {
	s := sampleSnapshot()
	c := s.Clone()
	require.Equal(t, s, c)

	c.Accounts[0].Name = "changed"
	c.Transactions[0].Tags[0] = "changed"
	*c.Transactions[0].DueDate = time.Time{}
	c.Settings.Categories[0] = "changed"

	assert.Equal(t, "A", s.Accounts[0].Name)
	assert.Equal(t, "x", s.Transactions[0].Tags[0])
	assert.False(t, s.Transactions[0].DueDate.IsZero())
	assert.Equal(t, DefaultCategories[0], s.Settings.Categories[0])
}

func TestSerialize_NilAndEmptyCollectionsAreEqual(t *testing.T) {
	a := Snapshot{Accounts: []Account{{ID: "a"}}, CurrentAccountID: "a"}
	b := Snapshot{Accounts: []Account{{ID: "a"}}, CurrentAccountID: "a", Transactions: []Transaction{}, Settings: Settings{Categories: []string{}}}

	ja, err := a.Serialize()
	require.NoError(t, err)
	jb, err := b.Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestSerialize_ShapeUsesWireNames(t *testing.T) {
	data, err := sampleSnapshot().Serialize()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, k := range []string{"accounts", "currentAccountId", "transactions", "settings"} {
		assert.Contains(t, m, k)
	}
	tx := m["transactions"].([]any)[0].(map[string]any)
	assert.Equal(t, "LEND", tx["type"])
	assert.Equal(t, "a1", tx["accountId"])
	assert.Contains(t, tx, "dueDate")

	repay := m["transactions"].([]any)[1].(map[string]any)
	assert.NotContains(t, repay, "dueDate")
	assert.NotContains(t, repay, "tags")
}

func TestTransactionsFor(t *testing.T) {
	s := sampleSnapshot()
	s.Accounts = append(s.Accounts, Account{ID: "a2"})
	s.Transactions = append(s.Transactions, Transaction{ID: "t3", AccountID: "a2"})

	got := s.TransactionsFor("a1")
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t2", got[1].ID)
	assert.Len(t, s.TransactionsFor("a2"), 1)
	assert.Empty(t, s.TransactionsFor("none"))
}

func TestNormalizeTags(t *testing.T) {
	assert.Nil(t, NormalizeTags(nil))
	assert.Nil(t, NormalizeTags([]string{" ", ""}))
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]string{" a", "b", "a ", ""}))
	assert.Equal(t, []string{}, NormalizeCategories(nil))
}

func TestLanguage_IsSupported(t *testing.T) {
	assert.True(t, LanguageEnglish.IsSupported())
	assert.True(t, Language("tr").IsSupported())
	assert.False(t, Language("xx").IsSupported())
}
