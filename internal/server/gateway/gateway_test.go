package gateway

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/dmitrijs2005/debtkeeper/internal/server/store"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openGateway(t *testing.T) (*Gateway, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debtkeeper.db")
	g, err := Open(context.Background(), path, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g, path
}

// rawDB opens a second handle on the same file to tamper with stored rows.
func rawDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", store.DSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleSnapshot() models.Snapshot {
	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	return models.Snapshot{
		Accounts: []models.Account{
			{ID: "a1", Name: "Home", AvatarColor: "#111111", IsDefault: true},
			{ID: "a2", Name: "Work", AvatarColor: "#222222"},
		},
		CurrentAccountID: "a2",
		Transactions: []models.Transaction{
			{ID: "t1", AccountID: "a1", Borrower: "Bob", Amount: 100, Date: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), Type: models.TypeLend, Category: "Family", Tags: []string{"rent", "urgent"}, DueDate: &due},
			{ID: "t2", AccountID: "a1", Borrower: "Bob", Amount: 40, Date: time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC), Type: models.TypeRepayment, Note: "first part"},
			{ID: "t3", AccountID: "a2", Borrower: "Eve", Amount: 12.75, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Type: models.TypeLend},
		},
		Settings: models.Settings{Currency: "€", DateFormat: "DD/MM/YYYY", Language: models.LanguageGerman, Categories: []string{"Family", "Travel"}},
	}
}

func TestLoad_EmptyStorageSeedsDefaults(t *testing.T) {
	g, _ := openGateway(t)

	snap, err := g.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Accounts, 1)
	assert.Equal(t, models.DefaultAccountName, snap.Accounts[0].Name)
	assert.True(t, snap.Accounts[0].IsDefault)
	assert.Equal(t, snap.Accounts[0].ID, snap.CurrentAccountID)
	assert.Empty(t, snap.Transactions)
	assert.Equal(t, models.DefaultSettings(), snap.Settings)
	assert.Equal(t, models.DefaultCategories, snap.Settings.Categories)
}

func TestFlushLoad_RoundTrip(t *testing.T) {
	g, _ := openGateway(t)
	ctx := context.Background()

	want := sampleSnapshot()
	require.NoError(t, g.Flush(ctx, want))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got, cmpopts.EquateEmpty()))

	// serialized forms agree too, which is what the cache compares
	wb, err := want.Serialize()
	require.NoError(t, err)
	gb, err := got.Serialize()
	require.NoError(t, err)
	assert.JSONEq(t, string(wb), string(gb))
}

func TestFlush_ReopenedStorageKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	ctx := context.Background()

	g, err := Open(ctx, path, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, g.Flush(ctx, sampleSnapshot()))
	require.NoError(t, g.Close())

	g, err = Open(ctx, path, logging.Discard())
	require.NoError(t, err)
	defer g.Close()

	got, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sampleSnapshot(), got, cmpopts.EquateEmpty()))
}

func TestFlush_InvalidSnapshotRejectedWithoutWriting(t *testing.T) {
	g, _ := openGateway(t)
	ctx := context.Background()
	require.NoError(t, g.Flush(ctx, sampleSnapshot()))

	bad := sampleSnapshot()
	bad.Transactions = append(bad.Transactions, models.Transaction{ID: "t9", AccountID: "ghost"})

	err := g.Flush(ctx, bad)
	require.ErrorIs(t, err, common.ErrInvalidSnapshot)

	got, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Transactions, 3)
}

func TestLoad_DanglingPointerIsRepointed(t *testing.T) {
	g, path := openGateway(t)
	ctx := context.Background()
	require.NoError(t, g.Flush(ctx, sampleSnapshot()))

	_, err := rawDB(t, path).Exec(`UPDATE settings SET value = 'ghost' WHERE key = 'currentAccountId'`)
	require.NoError(t, err)

	snap, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", snap.CurrentAccountID)
	require.NoError(t, snap.Validate())

	cur, _, err := g.store.ReadScalar(ctx, "currentAccountId")
	require.NoError(t, err)
	assert.Equal(t, "a1", cur)
}

func TestLoad_OrphanedTransactionsMoveToActiveAccount(t *testing.T) {
	g, path := openGateway(t)
	ctx := context.Background()
	require.NoError(t, g.Flush(ctx, sampleSnapshot()))

	_, err := rawDB(t, path).Exec(`INSERT INTO transactions (id, account_id, borrower, amount, date, type, note, category, tags)
		VALUES ('legacy', '', 'Old', 5, '2023-01-01T00:00:00Z', 'LEND', '', '', '')`)
	require.NoError(t, err)

	snap, err := g.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 4)
	assert.Equal(t, "a2", snap.Transactions[3].AccountID)

	stored, err := g.store.ReadTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", stored[3].AccountID)
}

func TestLoad_LegacyRowWithoutIDIsReturnedAsIs(t *testing.T) {
	g, path := openGateway(t)
	ctx := context.Background()

	_, err := rawDB(t, path).Exec(`INSERT INTO transactions (id, account_id, borrower, amount, date, type, note, category, tags)
		VALUES ('', 'default', 'Old', 5, '2023-01-01T00:00:00Z', 'LEND', '', '', '')`)
	require.NoError(t, err)

	snap, err := g.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
	assert.Empty(t, snap.Transactions[0].ID)
}

func TestLoad_CorruptionResetsToDefaults(t *testing.T) {
	tests := []struct {
		name   string
		tamper string
	}{
		{"unparseable date", `INSERT INTO transactions (id, account_id, borrower, amount, date, type, note, category, tags)
			VALUES ('x', 'a1', 'B', 1, 'yesterday', 'LEND', '', '', '')`},
		{"malformed settings blob", `UPDATE settings SET value = '{not json' WHERE key = 'settings'`},
		{"non-numeric amount", `INSERT INTO transactions (id, account_id, borrower, amount, date, type, note, category, tags)
			VALUES ('n', 'a1', 'B', 'lots', '2024-01-01T00:00:00Z', 'LEND', '', '', '')`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, path := openGateway(t)
			ctx := context.Background()
			require.NoError(t, g.Flush(ctx, sampleSnapshot()))

			_, err := rawDB(t, path).Exec(tt.tamper)
			require.NoError(t, err)

			snap, err := g.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(models.DefaultSnapshot(), snap, cmpopts.EquateEmpty()))

			// the defaults were persisted, so a second load agrees
			again, err := g.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(snap, again, cmpopts.EquateEmpty()))
		})
	}
}

func TestLoad_UnsupportedLanguageFallsBack(t *testing.T) {
	g, path := openGateway(t)
	ctx := context.Background()
	require.NoError(t, g.Flush(ctx, sampleSnapshot()))

	_, err := rawDB(t, path).Exec(`UPDATE settings SET value = '{"currency":"$","language":"xx","categories":["A"]}' WHERE key = 'settings'`)
	require.NoError(t, err)

	snap, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.LanguageEnglish, snap.Settings.Language)
	assert.Equal(t, []string{"A"}, snap.Settings.Categories)
}

func TestLoad_CancelledContext(t *testing.T) {
	g, _ := openGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

// lateCancelCtx passes the first Err check and is cancelled from then on.
type lateCancelCtx struct {
	context.Context
	checks atomic.Int32
	done   chan struct{}
}

func newLateCancelCtx() *lateCancelCtx {
	done := make(chan struct{})
	close(done)
	return &lateCancelCtx{Context: context.Background(), done: done}
}

func (c *lateCancelCtx) Done() <-chan struct{} { return c.done }

func (c *lateCancelCtx) Err() error {
	if c.checks.Add(1) == 1 {
		return nil
	}
	return context.Canceled
}

func TestLoad_CancelledDuringReadKeepsStoredData(t *testing.T) {
	g, _ := openGateway(t)
	require.NoError(t, g.Flush(context.Background(), sampleSnapshot()))

	_, err := g.Load(newLateCancelCtx())
	require.ErrorIs(t, err, context.Canceled)

	snap, err := g.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sampleSnapshot(), snap, cmpopts.EquateEmpty()))
}

func TestLoad_ReadFailureIsNotCorruption(t *testing.T) {
	g, path := openGateway(t)
	ctx := context.Background()
	require.NoError(t, g.Flush(ctx, sampleSnapshot()))

	require.NoError(t, g.store.Close())

	_, err := g.Load(ctx)
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	require.NotErrorIs(t, err, common.ErrCorruptData)

	reopened, err := Open(ctx, path, logging.Discard())
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 3, "nothing was reset")
}

func TestStatus(t *testing.T) {
	g, path := openGateway(t)
	ctx := context.Background()
	require.NoError(t, g.Flush(ctx, sampleSnapshot()))

	info := g.Status(ctx)
	assert.Equal(t, path, info.StorageLocation)
	assert.True(t, info.StorageExists)
	assert.Positive(t, info.StorageSizeBytes)
	assert.Equal(t, models.RecordCounts{Accounts: 2, Transactions: 3, Settings: 2}, info.RecordCounts)
}

func TestStatus_NeverFails(t *testing.T) {
	g, path := openGateway(t)
	require.NoError(t, g.Close())

	info := g.Status(context.Background())
	assert.Equal(t, path, info.StorageLocation)
	assert.Equal(t, models.RecordCounts{}, info.RecordCounts)
}

func TestOpen_StorageUnavailable(t *testing.T) {
	_, err := Open(context.Background(), t.TempDir(), logging.Discard())
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
}
