package migration

import (
	"fmt"
	"testing"

	"github.com/dmitrijs2005/debtkeeper/internal/idgen"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter() (idgen.Generator, *int) {
	n := 0
	return idgen.Func(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}), &n
}

func TestRun_AssignsMissingIDsOnce(t *testing.T) {
	s := models.DefaultSnapshot()
	s.Transactions = []models.Transaction{
		{ID: "keep", AccountID: models.DefaultAccountID},
		{AccountID: models.DefaultAccountID},
		{AccountID: models.DefaultAccountID},
	}
	gen, calls := counter()

	r := Run(&s, gen)
	require.Equal(t, 2, r.Changed())
	require.Equal(t, 2, *calls)
	assert.Equal(t, "keep", s.Transactions[0].ID)
	assert.Equal(t, "gen-1", s.Transactions[1].ID)
	assert.Equal(t, "gen-2", s.Transactions[2].ID)
	require.NoError(t, s.Validate())

	// second run is a no-op and never regenerates
	r = Run(&s, gen)
	assert.Equal(t, 0, r.Changed())
	assert.Equal(t, 2, *calls)
	assert.Equal(t, "gen-1", s.Transactions[1].ID)
}

func TestRun_ReportsEveryStep(t *testing.T) {
	s := models.DefaultSnapshot()
	gen, _ := counter()

	r := Run(&s, gen)
	require.Len(t, r.Steps, len(Steps))
	assert.Equal(t, 1, r.Steps[0].Version)
	assert.Equal(t, "assign-missing-transaction-ids", r.Steps[0].Name)
	assert.Equal(t, 0, r.Changed())
}
