// Package archive defines the outbound port for exporting ingested
// transactions to an external archive.
package archive

import (
	"context"

	"financas/internal/core"
)

// Writer appends transactions to the archive. Implementations must tolerate
// being called again with a batch that was already written; the caller only
// marks a batch archived after a successful append.
type Writer interface {
	AppendTransactions(ctx context.Context, txs []core.Transaction) error
}
