// Package statement turns raw statement exports into normalized transactions.
//
// Ingestion is best-effort: lines that cannot be understood are skipped, never
// turned into errors, so one bad row does not reject a whole file. The number
// of skipped lines is reported back for diagnostics.
package statement

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"financas/internal/category"
	"financas/internal/core"
)

// Stats summarizes one parsed file.
type Stats struct {
	Imported int
	Skipped  int
}

type Parser struct {
	classifier *category.Classifier
}

func NewParser(c *category.Classifier) *Parser {
	return &Parser{classifier: c}
}

// Parse converts the content of one statement file into transactions.
//
// Each non-blank line is split on ";" when present, otherwise on ",", and must
// yield at least date, description and amount; trailing fields are ignored.
// The signed amount decides the transaction type before being stored as a
// magnitude. Record order follows line order. Transaction IDs combine the
// source name, line number and the ingestion timestamp so re-uploading the
// same file never collides with earlier uploads.
func (p *Parser) Parse(content []byte, source string) ([]core.Transaction, Stats) {
	var (
		txs   []core.Transaction
		stats Stats
	)
	ingestedAt := ingestStamp()

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		sep := ","
		if strings.Contains(line, ";") {
			sep = ";"
		}
		fields := strings.Split(line, sep)
		if len(fields) < 3 {
			stats.Skipped++
			slog.Debug("skipping malformed statement line", "source", source, "line", i+1, "reason", "too few fields")
			continue
		}

		date := strings.TrimSpace(fields[0])
		desc := strings.TrimSpace(fields[1])
		signedCents, err := core.ParseSignedAmount(fields[2])
		if err != nil || desc == "" {
			stats.Skipped++
			slog.Debug("skipping malformed statement line", "source", source, "line", i+1, "reason", "bad amount or empty description")
			continue
		}

		typ, cat := p.classifier.Classify(desc, signedCents)
		txs = append(txs, core.Transaction{
			ID:          fmt.Sprintf("%s:%d:%d", source, i+1, ingestedAt),
			Date:        date,
			Description: desc,
			Amount:      core.Money{Cents: core.Abs(signedCents)},
			Type:        typ,
			Category:    cat,
			Source:      source,
		})
	}

	stats.Imported = len(txs)
	return txs, stats
}

var lastStamp atomic.Int64

// ingestStamp returns a strictly increasing nanosecond timestamp, so two
// parses of the same file can never produce colliding transaction IDs.
func ingestStamp() int64 {
	for {
		now := time.Now().UnixNano()
		last := lastStamp.Load()
		if now <= last {
			now = last + 1
		}
		if lastStamp.CompareAndSwap(last, now) {
			return now
		}
	}
}
