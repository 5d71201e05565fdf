// Package storage is the SQLite store backend. It persists ingested
// transactions so the dashboard survives restarts and the archive worker can
// find batches that still need exporting.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"financas/internal/core"
	"financas/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendBatch inserts a whole file's transactions inside one database
// transaction, keeping the per-file append atomic.
func (r *SQLiteRepository) AppendBatch(ctx context.Context, b store.Batch) error {
	for _, tx := range b.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("batch %s transaction %s: %w", b.ID, tx.ID, err)
		}
	}

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.PrepareContext(ctx, `
		INSERT INTO transactions (id, tx_date, description, amount_cents, tx_type, category, source, batch_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range b.Transactions {
		if _, err := stmt.ExecContext(ctx,
			tx.ID, tx.Date, tx.Description, tx.Amount.Cents, string(tx.Type), tx.Category, tx.Source, b.ID,
		); err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	slog.InfoContext(ctx, "Batch saved to SQLite",
		"batch_id", b.ID,
		"source", b.Source,
		"transactions", len(b.Transactions))
	return nil
}

// ListTransactions returns every transaction in ingestion order.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tx_date, description, amount_cents, tx_type, category, source
		FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListBatch returns the transactions of one ingested file, in line order.
func (r *SQLiteRepository) ListBatch(ctx context.Context, batchID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tx_date, description, amount_cents, tx_type, category, source
		FROM transactions WHERE batch_id = ? ORDER BY rowid`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch %s: %w", batchID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// PendingArchiveBatches returns batch IDs that have not been exported yet,
// oldest first. This backs the worker's periodic sweep for messages that
// never arrived.
func (r *SQLiteRepository) PendingArchiveBatches(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT batch_id FROM transactions
		WHERE archived_at IS NULL
		GROUP BY batch_id ORDER BY MIN(rowid) LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("pending archive batches: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan batch id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// MarkBatchArchived stamps every transaction of a batch as exported.
func (r *SQLiteRepository) MarkBatchArchived(ctx context.Context, batchID string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET archived_at = CURRENT_TIMESTAMP
		WHERE batch_id = ? AND archived_at IS NULL`, batchID); err != nil {
		return fmt.Errorf("mark batch archived: %w", err)
	}
	slog.InfoContext(ctx, "Batch marked as archived", "batch_id", batchID)
	return nil
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var out []core.Transaction
	for rows.Next() {
		var (
			tx    core.Transaction
			cents int64
			typ   string
		)
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Description, &cents, &typ, &tx.Category, &tx.Source); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Amount = core.Money{Cents: cents}
		tx.Type = core.TxType(typ)
		out = append(out, tx)
	}
	return out, rows.Err()
}
