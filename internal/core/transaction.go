package core

import (
	"errors"
	"strings"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType says which direction money moved. It is derived from the sign
	// of the parsed statement amount, never entered by the user.
	TxType string

	// Transaction is a single normalized statement line. Once built it is
	// never mutated; stores only append and views only filter.
	Transaction struct {
		ID          string
		Date        string // DD/MM/YYYY as it appeared on the statement
		Description string
		Amount      Money // magnitude, always >= 0
		Type        TxType
		Category    string
		Source      string // originating file name, kept for traceability
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyID          = errors.New("empty transaction id")
)

func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// MonthKey returns the MM/YYYY portion of the date, assuming the strict
// DD/MM/YYYY layout. Dates shorter than ten characters fall back to the whole
// string, which produces a malformed group key rather than a panic. Dates are
// not validated on ingestion, so this is an accepted limitation.
func (t Transaction) MonthKey() string {
	if len(t.Date) >= 10 {
		return t.Date[3:10]
	}
	return t.Date
}
