// Package gateway implements the State Gateway: the coarse-grained contract
// (Load, Flush, Status) through which the rest of the application reads and
// writes the persisted Snapshot without knowing about collections.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/filex"
	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/dmitrijs2005/debtkeeper/internal/server/repositories/settings"
	"github.com/dmitrijs2005/debtkeeper/internal/server/store"
)

// Gateway assembles and persists whole Snapshots on top of a store.Store.
type Gateway struct {
	store  *store.Store
	logger logging.Logger
}

// Open opens the Record Store at path, initializes its schema and seeds it
// when empty. The only error it returns wraps common.ErrStorageUnavailable.
func Open(ctx context.Context, path string, logger logging.Logger) (*Gateway, error) {
	s, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	g := New(s, logger)
	seeded, err := s.SeedIfEmpty(ctx)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if seeded {
		g.logger.Info(ctx, "seeded empty storage", "path", path)
	}
	return g, nil
}

// New returns a Gateway over an already initialized store.
func New(s *store.Store, logger logging.Logger) *Gateway {
	return &Gateway{store: s, logger: logger.With("module", "gateway")}
}

// Close releases the underlying storage.
func (g *Gateway) Close() error {
	return g.store.Close()
}

// Load reads every collection and assembles a Snapshot.
//
// Load never fails because of the stored content: empty storage is seeded,
// a dangling active-account pointer is repointed at the first account,
// transactions referencing unknown accounts are moved to the active one and
// corrupt data (common.ErrCorruptData) is replaced by a fresh default
// Snapshot. The repairs are persisted before returning.
//
// Any other read failure is returned: ctx.Err() once the context is done,
// otherwise an error wrapping common.ErrStorageUnavailable. Stored data is
// never overwritten in those cases.
func (g *Gateway) Load(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}

	snap, err := g.read(ctx)
	switch {
	case ctx.Err() != nil:
		return models.Snapshot{}, ctx.Err()
	case errors.Is(err, common.ErrCorruptData):
		g.logger.Error(ctx, "stored data is unreadable, resetting to defaults", "error", err)
		return g.reset(ctx), nil
	case err != nil:
		g.logger.Error(ctx, "failed to read stored data", "error", err)
		return models.Snapshot{}, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	if len(snap.Accounts) == 0 {
		g.logger.Info(ctx, "no accounts stored, writing default snapshot")
		return g.reset(ctx), nil
	}

	g.heal(ctx, &snap)
	return snap, nil
}

func (g *Gateway) read(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Accounts, err = g.store.ReadAccounts(ctx); err != nil {
		return snap, err
	}
	if snap.Transactions, err = g.store.ReadTransactions(ctx); err != nil {
		return snap, err
	}

	cur, _, err := g.store.ReadScalar(ctx, settings.KeyCurrentAccount)
	if err != nil {
		return snap, err
	}
	snap.CurrentAccountID = cur

	blob, ok, err := g.store.ReadScalar(ctx, settings.KeySettings)
	if err != nil {
		return snap, err
	}
	snap.Settings = models.DefaultSettings()
	if ok {
		var s models.Settings
		if err := json.Unmarshal([]byte(blob), &s); err != nil {
			return snap, fmt.Errorf("%w: malformed settings: %w", common.ErrCorruptData, err)
		}
		snap.Settings = s
	}
	snap.Settings.Categories = models.NormalizeCategories(snap.Settings.Categories)
	if !snap.Settings.Language.IsSupported() {
		g.logger.Warn(ctx, "unsupported language, using default", "language", snap.Settings.Language)
		snap.Settings.Language = models.LanguageEnglish
	}

	return snap, nil
}

// heal fixes referential problems in place and writes the fixes back.
func (g *Gateway) heal(ctx context.Context, snap *models.Snapshot) {
	if !snap.HasAccount(snap.CurrentAccountID) {
		g.logger.Warn(ctx, "active account pointer is dangling, repointing",
			"was", snap.CurrentAccountID, "now", snap.Accounts[0].ID)
		snap.CurrentAccountID = snap.Accounts[0].ID
		if err := g.store.WriteScalar(ctx, settings.KeyCurrentAccount, snap.CurrentAccountID); err != nil {
			g.logger.Error(ctx, "failed to persist repaired account pointer", "error", err)
		}
	}

	moved := 0
	for i := range snap.Transactions {
		if !snap.HasAccount(snap.Transactions[i].AccountID) {
			snap.Transactions[i].AccountID = snap.CurrentAccountID
			moved++
		}
	}
	if moved > 0 {
		g.logger.Warn(ctx, "moved orphaned transactions to the active account",
			"count", moved, "account", snap.CurrentAccountID)
		if err := g.store.ReplaceTransactions(ctx, snap.Transactions); err != nil {
			g.logger.Error(ctx, "failed to persist reassigned transactions", "error", err)
		}
	}
}

// reset persists and returns the default Snapshot.
func (g *Gateway) reset(ctx context.Context) models.Snapshot {
	snap := models.DefaultSnapshot()
	if err := g.write(ctx, snap); err != nil {
		g.logger.Error(ctx, "failed to persist default snapshot", "error", err)
	}
	return snap
}

// Flush writes snap as one all-or-nothing unit. Invalid snapshots are
// rejected with common.ErrInvalidSnapshot before touching storage.
func (g *Gateway) Flush(ctx context.Context, snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	if err := g.write(ctx, snap); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}
	g.logger.Debug(ctx, "snapshot flushed",
		"accounts", len(snap.Accounts), "transactions", len(snap.Transactions))
	return nil
}

func (g *Gateway) write(ctx context.Context, snap models.Snapshot) error {
	s := snap.Settings
	s.Categories = models.NormalizeCategories(s.Categories)
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return g.store.ReplaceSnapshot(ctx, snap.Accounts, snap.Transactions, map[string]string{
		settings.KeyCurrentAccount: snap.CurrentAccountID,
		settings.KeySettings:       string(blob),
	})
}

// Status reports where the data lives and how much of it there is.
// It never fails; anything it cannot determine is left at its zero value.
func (g *Gateway) Status(ctx context.Context) models.DiagnosticInfo {
	info := models.DiagnosticInfo{StorageLocation: g.store.Path()}

	exists, size, err := filex.Stat(g.store.Path())
	if err != nil {
		g.logger.Warn(ctx, "failed to stat storage", "error", err)
		return info
	}
	info.StorageExists = exists
	info.StorageSizeBytes = size

	counts, err := g.store.Counts(ctx)
	if err != nil {
		g.logger.Warn(ctx, "failed to count records", "error", err)
		return info
	}
	info.RecordCounts = counts
	return info
}
