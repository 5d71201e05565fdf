// Package report derives the dashboard views from a transaction sequence:
// filtering by month and category, running totals, per-category breakdowns and
// the monthly time series. Everything here is a pure function over slices.
package report

import (
	"strings"

	"financas/internal/core"
)

// All is the wildcard value for either filter dimension.
const All = "all"

// Filter narrows a transaction sequence. Month is matched as a substring of
// the raw date field (an "MM/YYYY" token against "DD/MM/YYYY" dates), not as
// a parsed calendar comparison. Category is an exact match.
type Filter struct {
	Month    string // "all" or "MM/YYYY"
	Category string // "all" or a category tag
}

func (f Filter) normalized() Filter {
	if f.Month == "" {
		f.Month = All
	}
	if f.Category == "" {
		f.Category = All
	}
	return f
}

// IsAll reports whether the filter matches everything.
func (f Filter) IsAll() bool {
	f = f.normalized()
	return f.Month == All && f.Category == All
}

// Apply returns the ordered subsequence matching both dimensions. Input order
// is preserved and no transaction is mutated.
func (f Filter) Apply(txs []core.Transaction) []core.Transaction {
	f = f.normalized()
	if f.IsAll() {
		return txs
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !f.matches(tx) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (f Filter) matches(tx core.Transaction) bool {
	if f.Month != All && !containsMonth(tx.Date, f.Month) {
		return false
	}
	if f.Category != All && tx.Category != f.Category {
		return false
	}
	return true
}

// containsMonth is substring containment on the raw date string. The month
// filter is documented as loose: it never parses the date.
func containsMonth(date, month string) bool {
	return strings.Contains(date, month)
}
