package transactions

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

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	query := `SELECT id, account_id, borrower, amount, date, due_date, type, note, category, tags
		FROM transactions ORDER BY seq`
	res, err := dbx.QueryAll(ctx, r.db, query, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	return res, nil
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		t         models.Transaction
		date, typ string
		tags      string
		due       sql.NullString
	)
	if err := rows.Scan(&t.ID, &t.AccountID, &t.Borrower, &t.Amount, &date, &due, &typ, &t.Note, &t.Category, &tags); err != nil {
		return t, fmt.Errorf("%w: %w", common.ErrCorruptData, err)
	}

	var err error
	if t.Date, err = parseDate(date); err != nil {
		return t, fmt.Errorf("%w: transaction %q: %w", common.ErrCorruptData, t.ID, err)
	}
	if t.DueDate, err = parseDueDate(due); err != nil {
		return t, fmt.Errorf("%w: transaction %q: %w", common.ErrCorruptData, t.ID, err)
	}
	t.Type = models.TransactionType(typ)
	t.Tags = SplitTags(tags)
	return t, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, txs []models.Transaction) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	query := `INSERT INTO transactions (id, account_id, borrower, amount, date, due_date, type, note, category, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range txs {
		_, err := r.db.ExecContext(ctx, query,
			t.ID, t.AccountID, t.Borrower, t.Amount, formatDate(t.Date), formatDueDate(t.DueDate),
			string(t.Type), t.Note, t.Category, JoinTags(t.Tags))
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}
