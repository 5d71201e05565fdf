// Package core holds the domain model shared by the parsing, reporting and
// storage layers: transactions, money amounts in integer cents, and the
// summary shapes derived from them.
package core

import (
	"math"
	"strconv"
	"strings"
)

// Money is an amount in integer cents. Calculations stay in cents to avoid
// floating-point drift; floats only appear at parse and display time.
type Money struct {
	Cents int64
}

// Reais returns the value as a float64 for display purposes only.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// ParseSignedAmount parses a statement amount field into signed cents.
//
// Statement exports carry amounts like "R$ 1.234,56", "-25,50" or "5000.00".
// The optional "R$" prefix is stripped. When a decimal comma is present the
// dots are thousands separators and are removed; without a comma the dot is
// an ordinary decimal point. The sign is preserved, rounding is half away
// from zero on the third decimal.
//
// Examples:
//
//	ParseSignedAmount("R$ 1.234,56") -> 123456, nil
//	ParseSignedAmount("-25,50")      -> -2550, nil
//	ParseSignedAmount("5000.00")     -> 500000, nil
func ParseSignedAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}
	return int64(math.Round(f * 100)), nil
}

// Abs returns the magnitude of a signed cents value.
func Abs(cents int64) int64 {
	if cents < 0 {
		return -cents
	}
	return cents
}
