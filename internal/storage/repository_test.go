package storage

import (
	"context"
	"path/filepath"
	"testing"

	"financas/internal/core"
	"financas/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "financas.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func batch(id string, ids ...string) store.Batch {
	b := store.Batch{ID: id, Source: "extrato.csv"}
	for _, txID := range ids {
		b.Transactions = append(b.Transactions, core.Transaction{
			ID:          txID,
			Date:        "01/01/2024",
			Description: "Uber",
			Amount:      core.Money{Cents: 2550},
			Type:        core.Expense,
			Category:    "transport",
			Source:      "extrato.csv",
		})
	}
	return b
}

func TestAppendAndListRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.AppendBatch(ctx, batch("b1", "t1", "t2")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendBatch(ctx, batch("b2", "t3")); err != nil {
		t.Fatalf("append: %v", err)
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions", len(txs))
	}
	if txs[0].ID != "t1" || txs[1].ID != "t2" || txs[2].ID != "t3" {
		t.Fatalf("ingestion order broken: %+v", txs)
	}
	if txs[0].Type != core.Expense || txs[0].Amount.Cents != 2550 || txs[0].Category != "transport" {
		t.Fatalf("fields lost on round trip: %+v", txs[0])
	}
}

func TestAppendBatchAtomicOnDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.AppendBatch(ctx, batch("b1", "dup")); err != nil {
		t.Fatalf("append: %v", err)
	}
	// Second batch reuses an ID; the whole batch must be rolled back.
	if err := repo.AppendBatch(ctx, batch("b2", "t9", "dup")); err == nil {
		t.Fatal("expected primary key error")
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("partial batch persisted: %+v", txs)
	}
}

func TestListBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.AppendBatch(ctx, batch("b1", "t1"))
	_ = repo.AppendBatch(ctx, batch("b2", "t2", "t3"))

	txs, err := repo.ListBatch(ctx, "b2")
	if err != nil {
		t.Fatalf("list batch: %v", err)
	}
	if len(txs) != 2 || txs[0].ID != "t2" || txs[1].ID != "t3" {
		t.Fatalf("batch listing wrong: %+v", txs)
	}
}

func TestArchiveLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.AppendBatch(ctx, batch("b1", "t1"))
	_ = repo.AppendBatch(ctx, batch("b2", "t2"))

	pending, err := repo.PendingArchiveBatches(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 || pending[0] != "b1" || pending[1] != "b2" {
		t.Fatalf("pending = %v", pending)
	}

	if err := repo.MarkBatchArchived(ctx, "b1"); err != nil {
		t.Fatalf("mark archived: %v", err)
	}

	pending, err = repo.PendingArchiveBatches(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0] != "b2" {
		t.Fatalf("pending after archive = %v", pending)
	}
}
