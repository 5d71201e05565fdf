package core

import "testing"

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "extrato.csv:1:1",
		Date:        "01/01/2024",
		Description: "Salário",
		Amount:      Money{Cents: 500000},
		Type:        Income,
		Category:    "salary",
		Source:      "extrato.csv",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"empty id", Transaction{Date: "01/01/2024", Description: "a", Amount: Money{Cents: 1}, Type: Income, Category: "other"}, ErrEmptyID},
		{"negative amount", Transaction{ID: "x", Description: "a", Amount: Money{Cents: -1}, Type: Income, Category: "other"}, ErrInvalidAmount},
		{"empty description", Transaction{ID: "x", Amount: Money{Cents: 1}, Type: Income, Category: "other"}, ErrEmptyDescription},
		{"bad type", Transaction{ID: "x", Description: "a", Amount: Money{Cents: 1}, Type: "transfer", Category: "other"}, ErrInvalidType},
		{"empty category", Transaction{ID: "x", Description: "a", Amount: Money{Cents: 1}, Type: Expense}, ErrEmptyCategory},
	}
	for _, tc := range bads {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tx.Validate(); err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	cases := []struct {
		date string
		key  string
	}{
		{"05/02/2024", "02/2024"},
		{"31/12/2023", "12/2023"},
		{"2024-02-05", "4-02-20"}, // unexpected layouts produce a wrong key, dates are never validated
		{"short", "short"},
	}
	for _, tc := range cases {
		tx := Transaction{Date: tc.date}
		if got := tx.MonthKey(); got != tc.key {
			t.Errorf("MonthKey(%q) = %q, want %q", tc.date, got, tc.key)
		}
	}
}
