package report

import (
	"testing"

	"financas/internal/core"
)

func TestSummarize(t *testing.T) {
	txs := []core.Transaction{
		{Amount: core.Money{Cents: 10000}, Type: core.Income, Category: "salary"},
		{Amount: core.Money{Cents: 4000}, Type: core.Expense, Category: "food"},
	}
	got := Summarize(txs)
	if got.Income.Cents != 10000 || got.Expense.Cents != 4000 || got.Balance.Cents != 6000 {
		t.Fatalf("totals = %+v", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.Income.Cents != 0 || got.Expense.Cents != 0 || got.Balance.Cents != 0 {
		t.Fatalf("empty totals = %+v", got)
	}
}

func TestSummarizeBalanceInvariant(t *testing.T) {
	txs := sampleTxs()
	got := Summarize(txs)
	if got.Balance.Cents != got.Income.Cents-got.Expense.Cents {
		t.Fatalf("balance %d != income %d - expense %d", got.Balance.Cents, got.Income.Cents, got.Expense.Cents)
	}
}

func TestByCategory(t *testing.T) {
	txs := []core.Transaction{
		{Amount: core.Money{Cents: 100}, Type: core.Expense, Category: "food", Date: "01/01/2024"},
		{Amount: core.Money{Cents: 200}, Type: core.Expense, Category: "transport", Date: "01/01/2024"},
		{Amount: core.Money{Cents: 300}, Type: core.Expense, Category: "food", Date: "02/01/2024"},
		// Income lands in the same bucket as expenses with the same tag.
		{Amount: core.Money{Cents: 50}, Type: core.Income, Category: "other", Date: "02/01/2024"},
	}
	got := ByCategory(txs)
	if len(got) != 3 {
		t.Fatalf("got %d categories: %+v", len(got), got)
	}
	if got[0].Name != "food" || got[0].Amount.Cents != 400 {
		t.Fatalf("food bucket = %+v", got[0])
	}
	if got[1].Name != "transport" || got[1].Amount.Cents != 200 {
		t.Fatalf("transport bucket = %+v", got[1])
	}
	if got[2].Name != "other" || got[2].Amount.Cents != 50 {
		t.Fatalf("other bucket = %+v", got[2])
	}
}

func TestExpenseByCategory(t *testing.T) {
	txs := []core.Transaction{
		{Amount: core.Money{Cents: 100}, Type: core.Expense, Category: "food"},
		{Amount: core.Money{Cents: 900}, Type: core.Income, Category: "salary"},
		// "other" has both directions, so it stays in the view with both summed.
		{Amount: core.Money{Cents: 30}, Type: core.Income, Category: "other"},
		{Amount: core.Money{Cents: 70}, Type: core.Expense, Category: "other"},
	}
	got := ExpenseByCategory(txs)
	if len(got) != 2 {
		t.Fatalf("got %d categories: %+v", len(got), got)
	}
	if got[0].Name != "food" || got[0].Amount.Cents != 100 {
		t.Fatalf("food bucket = %+v", got[0])
	}
	if got[1].Name != "other" || got[1].Amount.Cents != 100 {
		t.Fatalf("other bucket = %+v", got[1])
	}
}

func TestMonthlySeries(t *testing.T) {
	txs := []core.Transaction{
		{Date: "05/02/2024", Amount: core.Money{Cents: 500}, Type: core.Expense, Category: "food"},
		{Date: "10/01/2024", Amount: core.Money{Cents: 1000}, Type: core.Income, Category: "salary"},
		{Date: "20/02/2024", Amount: core.Money{Cents: 200}, Type: core.Income, Category: "other"},
		{Date: "15/12/2023", Amount: core.Money{Cents: 900}, Type: core.Expense, Category: "housing"},
	}
	got := MonthlySeries(txs)
	if len(got) != 3 {
		t.Fatalf("got %d months: %+v", len(got), got)
	}
	wantOrder := []string{"12/2023", "01/2024", "02/2024"}
	for i, w := range wantOrder {
		if got[i].Month != w {
			t.Fatalf("series order = %v, want %v", got, wantOrder)
		}
	}
	feb := got[2]
	if feb.Income.Cents != 200 || feb.Expense.Cents != 500 {
		t.Fatalf("february sums = %+v", feb)
	}
}

func TestMonthlySeriesGroupsByMonthKey(t *testing.T) {
	txs := []core.Transaction{{Date: "05/02/2024", Amount: core.Money{Cents: 1}, Type: core.Expense, Category: "food"}}
	got := MonthlySeries(txs)
	if len(got) != 1 || got[0].Month != "02/2024" {
		t.Fatalf("series = %+v", got)
	}
}

func TestMonthlySeriesChronological(t *testing.T) {
	txs := []core.Transaction{
		{Date: "01/11/2024", Amount: core.Money{Cents: 1}, Type: core.Income, Category: "other"},
		{Date: "01/03/2023", Amount: core.Money{Cents: 1}, Type: core.Income, Category: "other"},
		{Date: "01/01/2025", Amount: core.Money{Cents: 1}, Type: core.Income, Category: "other"},
		{Date: "01/07/2023", Amount: core.Money{Cents: 1}, Type: core.Income, Category: "other"},
	}
	got := MonthlySeries(txs)
	for i := 1; i < len(got); i++ {
		yi, mi := monthSortKey(got[i-1].Month)
		yj, mj := monthSortKey(got[i].Month)
		if yi > yj || (yi == yj && mi > mj) {
			t.Fatalf("series not chronological: %+v", got)
		}
	}
}

func TestSortByDateDesc(t *testing.T) {
	txs := []core.Transaction{
		{ID: "a", Date: "01/01/2024"},
		{ID: "b", Date: "15/03/2024"},
		{ID: "c", Date: "28/02/2024"},
		{ID: "d", Date: "31/12/2023"},
	}
	got := SortByDateDesc(txs)
	want := []string{"b", "c", "a", "d"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	// Input is untouched.
	if txs[0].ID != "a" {
		t.Fatal("input slice reordered")
	}
}

func TestMonths(t *testing.T) {
	got := Months(sampleTxs())
	if len(got) != 2 || got[0] != "01/2024" || got[1] != "02/2024" {
		t.Fatalf("months = %v", got)
	}
}
