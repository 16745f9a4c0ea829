package proto

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestSnapshotCodec(t *testing.T) {
	s := models.DefaultSnapshot()
	s.Transactions = []models.Transaction{{ID: "t1", AccountID: models.DefaultAccountID, Borrower: "Bob", Amount: 5, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Type: models.TypeLend}}

	v, err := EncodeSnapshot(s)
	require.NoError(t, err)

	got, err := DecodeSnapshot(v)
	require.NoError(t, err)
	assert.Equal(t, s.Transactions, got.Transactions)
	assert.Equal(t, s.CurrentAccountID, got.CurrentAccountID)
}

func TestDecodeSnapshot_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload *wrapperspb.BytesValue
	}{
		{"nil", nil},
		{"empty", wrapperspb.Bytes(nil)},
		{"not json", wrapperspb.Bytes([]byte("{"))},
		{"unknown field", wrapperspb.Bytes([]byte(`{"accounts":[{"id":"a","name":"A"}],"currentAccountId":"a","extra":1}`))},
		{"wrong type", wrapperspb.Bytes([]byte(`{"accounts":"nope"}`))},
		{"no accounts", wrapperspb.Bytes([]byte(`{"accounts":[],"currentAccountId":""}`))},
		{"dangling pointer", wrapperspb.Bytes([]byte(`{"accounts":[{"id":"a","name":"A"}],"currentAccountId":"b"}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot(tt.payload)
			require.ErrorIs(t, err, common.ErrInvalidSnapshot)
		})
	}
}

func TestDecodeLoadedSnapshot_KeepsTransactionsWithoutID(t *testing.T) {
	s := models.DefaultSnapshot()
	s.Transactions = []models.Transaction{{AccountID: models.DefaultAccountID, Borrower: "Old", Amount: 5, Type: models.TypeLend}}

	v, err := EncodeSnapshot(s)
	require.NoError(t, err)

	_, err = DecodeSnapshot(v)
	require.ErrorIs(t, err, common.ErrInvalidSnapshot, "flush payloads still need ids")

	got, err := DecodeLoadedSnapshot(v)
	require.NoError(t, err)
	require.Len(t, got.Transactions, 1)
	assert.Empty(t, got.Transactions[0].ID)
	assert.Equal(t, "Old", got.Transactions[0].Borrower)

	_, err = DecodeLoadedSnapshot(wrapperspb.Bytes([]byte(`{"accounts":[],"currentAccountId":""}`)))
	require.ErrorIs(t, err, common.ErrInvalidSnapshot)
}

func TestDiagnosticsCodec(t *testing.T) {
	info := models.DiagnosticInfo{StorageLocation: "/tmp/x.db", StorageExists: true, StorageSizeBytes: 4096, RecordCounts: models.RecordCounts{Accounts: 1, Settings: 2}}
	v, err := EncodeDiagnostics(info)
	require.NoError(t, err)
	assert.Contains(t, string(v.GetValue()), `"storageSizeBytes":4096`)

	got, err := DecodeDiagnostics(v)
	require.NoError(t, err)
	assert.Equal(t, info, got)

	_, err = DecodeDiagnostics(wrapperspb.Bytes([]byte("x")))
	require.Error(t, err)
}
