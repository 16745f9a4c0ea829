// Package store is the durable Record Store of DebtKeeper.
//
// # Overview
//
// A Store owns one SQLite database file holding three collections: accounts,
// transactions and a key-value settings table (active-account pointer and the
// settings blob). Collections are read and written whole; every replace runs
// inside a single database transaction so readers never observe a partially
// replaced collection, and a failure rolls the collection back to its
// pre-call state.
//
// # Schema
//
// The schema is defined by embedded goose migrations (see
// internal/server/migrations) and applied by InitializeSchema, which is
// idempotent.
//
// # Concurrency
//
// The underlying *sql.DB is limited to a single connection: storage calls are
// serialized by the pool and never overlap.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/dbx"
	"github.com/dmitrijs2005/debtkeeper/internal/filex"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/dmitrijs2005/debtkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/debtkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/debtkeeper/internal/server/repositories/settings"
	"github.com/dmitrijs2005/debtkeeper/internal/server/repositories/transactions"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Counts is the number of rows per collection.
type Counts = models.RecordCounts

// Store is the SQLite-backed Record Store.
type Store struct {
	db   *sql.DB
	path string
}

// DSN builds the driver connection string for a database file.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// Open opens (creating when needed) the database at path and initializes the
// schema. Any failure here means there is no usable storage and is reported
// as common.ErrStorageUnavailable.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s := New(db, path)
	if err := s.InitializeSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	return s, nil
}

// New wraps an already opened database. path is informational.
func New(db *sql.DB, path string) *Store {
	return &Store{db: db, path: path}
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// InitializeSchema applies pending migrations. Running it again is a no-op.
func (s *Store) InitializeSchema(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts the default account, points the active-account pointer
// at it and writes default settings when the accounts collection is empty.
// It reports whether seeding happened; a non-empty store is left untouched.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	seeded := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		accRepo := accounts.NewSQLiteRepository(tx)
		n, err := accRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		acc := models.DefaultAccount()
		if err := accRepo.Insert(ctx, acc); err != nil {
			return err
		}

		setRepo := settings.NewSQLiteRepository(tx)
		if err := setRepo.Set(ctx, settings.KeyCurrentAccount, acc.ID); err != nil {
			return err
		}
		if _, ok, err := setRepo.Get(ctx, settings.KeySettings); err != nil {
			return err
		} else if !ok {
			blob, err := json.Marshal(models.DefaultSettings())
			if err != nil {
				return err
			}
			if err := setRepo.Set(ctx, settings.KeySettings, string(blob)); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed store: %w", err)
	}
	return seeded, nil
}

// ReplaceAccounts atomically replaces the accounts collection.
func (s *Store) ReplaceAccounts(ctx context.Context, list []models.Account) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return accounts.NewSQLiteRepository(tx).ReplaceAll(ctx, list)
	})
}

// ReplaceTransactions atomically replaces the transactions collection.
func (s *Store) ReplaceTransactions(ctx context.Context, list []models.Transaction) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return transactions.NewSQLiteRepository(tx).ReplaceAll(ctx, list)
	})
}

// ReplaceSnapshot replaces both entity collections and upserts the given
// scalars inside one transaction: all of it lands or none of it does.
func (s *Store) ReplaceSnapshot(ctx context.Context, accs []models.Account, txs []models.Transaction, scalars map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := accounts.NewSQLiteRepository(tx).ReplaceAll(ctx, accs); err != nil {
			return err
		}
		if err := transactions.NewSQLiteRepository(tx).ReplaceAll(ctx, txs); err != nil {
			return err
		}
		setRepo := settings.NewSQLiteRepository(tx)
		for k, v := range scalars {
			if err := setRepo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadAccounts returns the whole accounts collection.
func (s *Store) ReadAccounts(ctx context.Context) ([]models.Account, error) {
	return accounts.NewSQLiteRepository(s.db).GetAll(ctx)
}

// ReadTransactions returns the whole transactions collection.
func (s *Store) ReadTransactions(ctx context.Context) ([]models.Transaction, error) {
	return transactions.NewSQLiteRepository(s.db).GetAll(ctx)
}

// ReadScalar returns a settings value; ok is false when the key is absent.
func (s *Store) ReadScalar(ctx context.Context, key string) (string, bool, error) {
	return settings.NewSQLiteRepository(s.db).Get(ctx, key)
}

// WriteScalar upserts a settings value.
func (s *Store) WriteScalar(ctx context.Context, key, value string) error {
	return settings.NewSQLiteRepository(s.db).Set(ctx, key, value)
}

// Counts returns row counts for every collection.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	var err error
	if c.Accounts, err = accounts.NewSQLiteRepository(s.db).Count(ctx); err != nil {
		return Counts{}, err
	}
	if c.Transactions, err = transactions.NewSQLiteRepository(s.db).Count(ctx); err != nil {
		return Counts{}, err
	}
	if c.Settings, err = settings.NewSQLiteRepository(s.db).Count(ctx); err != nil {
		return Counts{}, err
	}
	return c, nil
}
