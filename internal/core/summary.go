package core

// Totals are the running sums over a filtered transaction set.
// Balance is income minus expense and may go negative.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// CategoryAmount is an amount aggregated under a category tag.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthSummary accumulates income and expense for one MM/YYYY group key.
type MonthSummary struct {
	Month   string // MM/YYYY
	Income  Money
	Expense Money
}
