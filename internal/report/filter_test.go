package report

import (
	"testing"

	"financas/internal/core"
)

func sampleTxs() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Date: "01/01/2024", Description: "Salário", Amount: core.Money{Cents: 500000}, Type: core.Income, Category: "salary"},
		{ID: "2", Date: "15/01/2024", Description: "Uber", Amount: core.Money{Cents: 2550}, Type: core.Expense, Category: "transport"},
		{ID: "3", Date: "05/02/2024", Description: "iFood", Amount: core.Money{Cents: 4500}, Type: core.Expense, Category: "food"},
		{ID: "4", Date: "20/02/2024", Description: "Freela", Amount: core.Money{Cents: 80000}, Type: core.Income, Category: "freelance"},
	}
}

func TestFilterAllIsIdentity(t *testing.T) {
	txs := sampleTxs()
	out := Filter{Month: "all", Category: "all"}.Apply(txs)
	if len(out) != len(txs) {
		t.Fatalf("got %d, want %d", len(out), len(txs))
	}
	for i := range txs {
		if out[i].ID != txs[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
	// Empty fields behave like "all".
	out = Filter{}.Apply(txs)
	if len(out) != len(txs) {
		t.Fatalf("empty filter got %d, want %d", len(out), len(txs))
	}
}

func TestFilterByMonth(t *testing.T) {
	out := Filter{Month: "01/2024", Category: "all"}.Apply(sampleTxs())
	if len(out) != 2 {
		t.Fatalf("got %d, want 2", len(out))
	}
	if out[0].ID != "1" || out[1].ID != "2" {
		t.Fatalf("wrong subset: %v, %v", out[0].ID, out[1].ID)
	}
}

func TestFilterByCategory(t *testing.T) {
	out := Filter{Month: "all", Category: "food"}.Apply(sampleTxs())
	if len(out) != 1 || out[0].ID != "3" {
		t.Fatalf("wrong subset: %+v", out)
	}
}

func TestFilterBothDimensions(t *testing.T) {
	out := Filter{Month: "02/2024", Category: "freelance"}.Apply(sampleTxs())
	if len(out) != 1 || out[0].ID != "4" {
		t.Fatalf("wrong subset: %+v", out)
	}
	out = Filter{Month: "01/2024", Category: "food"}.Apply(sampleTxs())
	if len(out) != 0 {
		t.Fatalf("expected empty, got %d", len(out))
	}
}

func TestFilterIsSubset(t *testing.T) {
	txs := sampleTxs()
	byID := map[string]core.Transaction{}
	for _, tx := range txs {
		byID[tx.ID] = tx
	}
	out := Filter{Month: "02/2024"}.Apply(txs)
	for _, tx := range out {
		orig, ok := byID[tx.ID]
		if !ok {
			t.Fatalf("output transaction %q not in input", tx.ID)
		}
		if orig != tx {
			t.Fatalf("transaction %q mutated by filter", tx.ID)
		}
	}
}
