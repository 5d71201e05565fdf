package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/report"
)

// parseFilter builds the dashboard filter from query parameters. Absent
// parameters mean no restriction.
func parseFilter(r *http.Request) report.Filter {
	return report.Filter{
		Month:    strings.TrimSpace(r.URL.Query().Get("month")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}
}

// filterKey is the cache key for a filter, stable across equivalent spellings.
func filterKey(f report.Filter) string {
	month, cat := f.Month, f.Category
	if month == "" {
		month = report.All
	}
	if cat == "" {
		cat = report.All
	}
	return month + "|" + cat
}

// loadTransactions returns the full stored listing, cached briefly to keep
// dashboard partials from hitting the store four times per page.
func (s *Server) loadTransactions(ctx context.Context) ([]core.Transaction, error) {
	const key = "all"
	if txs, found := s.txCache.Get(key); found {
		return txs, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	txs, err := s.lister.ListTransactions(cctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	s.txCache.Set(key, txs)
	applog.FromContext(ctx).Debug("Transaction listing cached", "count", len(txs))
	return txs, nil
}

// formatBRL formats cents as a Brazilian currency string, e.g. "R$ 1.234,56".
func formatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	reais := cents / 100
	rem := cents % 100

	digits := strconv.FormatInt(reais, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	s := "R$ " + b.String() + "," + fmt.Sprintf("%02d", rem)
	if neg {
		return "-" + s
	}
	return s
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
