// Package store defines the ports for transaction persistence. The store is
// an append-only ordered sequence: it grows via batch appends, one batch per
// ingested file, and is never reordered or shrunk.
package store

import (
	"context"

	"financas/internal/core"
)

// Batch is the parsed outcome of one statement file. A batch is appended as
// one atomic unit so concurrent uploads can interleave at file granularity
// only, never mid-file.
type Batch struct {
	ID           string
	Source       string
	Transactions []core.Transaction
}

type (
	Appender interface {
		AppendBatch(ctx context.Context, b Batch) error
	}

	Lister interface {
		// ListTransactions returns all transactions in ingestion order.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// Store is the full persistence surface the server needs.
	Store interface {
		Appender
		Lister
	}
)
