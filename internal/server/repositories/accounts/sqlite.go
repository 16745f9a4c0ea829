package accounts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/dbx"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Account, error) {
	query := `SELECT id, name, avatar_color, is_default FROM accounts ORDER BY seq`
	res, err := dbx.QueryAll(ctx, r.db, query, func(rows *sql.Rows) (models.Account, error) {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.AvatarColor, &a.IsDefault); err != nil {
			return a, fmt.Errorf("%w: %w", common.ErrCorruptData, err)
		}
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	return res, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, accounts []models.Account) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}
	for _, a := range accounts {
		if err := r.Insert(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, a models.Account) error {
	query := `INSERT INTO accounts (id, name, avatar_color, is_default) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.AvatarColor, a.IsDefault); err != nil {
		return fmt.Errorf("failed to insert account %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}
