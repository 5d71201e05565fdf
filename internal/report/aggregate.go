package report

import (
	"sort"
	"strconv"
	"strings"

	"financas/internal/core"
)

// Summarize computes the running totals for a (usually already filtered)
// transaction set. An empty set yields all zeros.
func Summarize(txs []core.Transaction) core.Totals {
	var income, expense int64
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			income += tx.Amount.Cents
		case core.Expense:
			expense += tx.Amount.Cents
		}
	}
	return core.Totals{
		Income:  core.Money{Cents: income},
		Expense: core.Money{Cents: expense},
		Balance: core.Money{Cents: income - expense},
	}
}

// ByCategory sums amounts per category tag. Both types contribute to the same
// bucket; the key is purely the category name. First-seen order is preserved
// so output is deterministic for a given input order.
func ByCategory(txs []core.Transaction) []core.CategoryAmount {
	sums := map[string]int64{}
	var order []string
	for _, tx := range txs {
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount.Cents
	}
	out := make([]core.CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, core.CategoryAmount{Name: name, Amount: core.Money{Cents: sums[name]}})
	}
	return out
}

// ExpenseByCategory is the distribution view: only categories with at least
// one expense transaction are kept, with sums taken over both types like
// ByCategory.
func ExpenseByCategory(txs []core.Transaction) []core.CategoryAmount {
	hasExpense := map[string]bool{}
	for _, tx := range txs {
		if tx.Type == core.Expense {
			hasExpense[tx.Category] = true
		}
	}
	all := ByCategory(txs)
	out := make([]core.CategoryAmount, 0, len(all))
	for _, ca := range all {
		if hasExpense[ca.Name] {
			out = append(out, ca)
		}
	}
	return out
}

// MonthlySeries groups transactions by their MM/YYYY month key and accumulates
// income and expense per group. The series is sorted ascending by calendar
// chronology, reading the key back as (year, month).
func MonthlySeries(txs []core.Transaction) []core.MonthSummary {
	sums := map[string]*core.MonthSummary{}
	for _, tx := range txs {
		key := tx.MonthKey()
		ms, ok := sums[key]
		if !ok {
			ms = &core.MonthSummary{Month: key}
			sums[key] = ms
		}
		switch tx.Type {
		case core.Income:
			ms.Income.Cents += tx.Amount.Cents
		case core.Expense:
			ms.Expense.Cents += tx.Amount.Cents
		}
	}

	out := make([]core.MonthSummary, 0, len(sums))
	for _, ms := range sums {
		out = append(out, *ms)
	}
	sort.Slice(out, func(i, j int) bool {
		yi, mi := monthSortKey(out[i].Month)
		yj, mj := monthSortKey(out[j].Month)
		if yi != yj {
			return yi < yj
		}
		if mi != mj {
			return mi < mj
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// SortByDateDesc returns a copy of the sequence ordered newest first,
// comparing dates as (year, month, day) taken from the DD/MM/YYYY parts.
func SortByDateDesc(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		yi, mi, di := dateSortKey(out[i].Date)
		yj, mj, dj := dateSortKey(out[j].Date)
		if yi != yj {
			return yi > yj
		}
		if mi != mj {
			return mi > mj
		}
		return di > dj
	})
	return out
}

// Months lists the distinct month keys present, chronologically ascending.
// Used to populate the dashboard month filter.
func Months(txs []core.Transaction) []string {
	series := MonthlySeries(txs)
	out := make([]string, len(series))
	for i, ms := range series {
		out[i] = ms.Month
	}
	return out
}

func monthSortKey(key string) (year, month int) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	month, _ = strconv.Atoi(parts[0])
	year, _ = strconv.Atoi(parts[1])
	return year, month
}

func dateSortKey(date string) (year, month, day int) {
	parts := strings.SplitN(date, "/", 3)
	if len(parts) != 3 {
		return 0, 0, 0
	}
	day, _ = strconv.Atoi(parts[0])
	month, _ = strconv.Atoi(parts[1])
	year, _ = strconv.Atoi(parts[2])
	return year, month, day
}
