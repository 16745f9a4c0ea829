package cli

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitOptions(t *testing.T) {
	pos, opts := splitOptions([]string{"Bob", "10", "Note=hi", "x=y", "tags=a,b"}, "note", "tags")

	assert.Equal(t, []string{"Bob", "10", "x=y"}, pos)
	assert.Equal(t, map[string]string{"note": "hi", "tags": "a,b"}, opts)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"10", 10, false},
		{" 1,250.75 ", 1250.75, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

	d, err := parseDate("2025-01-02", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -1), d)

	_, err = parseDate("02/01/2025", now)
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]models.TransactionType{
		"lend": models.TypeLend, "LENT": models.TypeLend, "repay": models.TypeRepayment, "Repayment": models.TypeRepayment,
	} {
		got, err := parseType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := parseType("gift")
	require.Error(t, err)
}
