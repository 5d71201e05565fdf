package worker

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/archive"
	"financas/internal/core"
)

// BatchSource is the slice of the storage layer the worker needs:
// read a stored batch, find batches not yet archived, mark one done.
// *storage.SQLiteRepository satisfies it.
type BatchSource interface {
	ListBatch(ctx context.Context, batchID string) ([]core.Transaction, error)
	PendingArchiveBatches(ctx context.Context, limit int) ([]string, error)
	MarkBatchArchived(ctx context.Context, batchID string) error
}

// ArchiveWorker copies stored statement batches to an external archive
// (Google Sheets in production). It is driven two ways: AMQP messages for
// freshly imported batches, and a periodic sweep over batches whose message
// was lost.
type ArchiveWorker struct {
	source    BatchSource
	archive   archive.Writer
	batchSize int
}

func NewArchiveWorker(source BatchSource, writer archive.Writer, batchSize int) *ArchiveWorker {
	return &ArchiveWorker{
		source:    source,
		archive:   writer,
		batchSize: batchSize,
	}
}

// HandleImportedMessage processes a single statement-imported message from AMQP.
func (w *ArchiveWorker) HandleImportedMessage(ctx context.Context, msg *amqp.StatementImportedMessage) error {
	slog.InfoContext(ctx, "Processing imported message",
		"batch_id", msg.BatchID,
		"source", msg.Source,
		"imported", msg.Imported)

	if msg.Imported == 0 {
		slog.InfoContext(ctx, "Batch has no transactions, nothing to archive",
			"batch_id", msg.BatchID)
		return nil
	}

	if err := w.archiveBatch(ctx, msg.BatchID); err != nil {
		return fmt.Errorf("archive batch %s: %w", msg.BatchID, err)
	}
	return nil
}

// ProcessPendingBatches archives any batches that were stored but never
// archived. This is a backup mechanism in case AMQP messages are lost.
func (w *ArchiveWorker) ProcessPendingBatches(ctx context.Context) error {
	pending, err := w.source.PendingArchiveBatches(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending batches: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending batches", "count", len(pending))

	for _, batchID := range pending {
		if err := w.archiveBatch(ctx, batchID); err != nil {
			slog.ErrorContext(ctx, "Failed to archive batch", "batch_id", batchID, "error", err)
			continue
		}
	}

	return nil
}

// StartupArchiveCheck drains the pending backlog at worker startup. It uses a
// larger limit than the periodic sweep to recover quickly from downtime.
func (w *ArchiveWorker) StartupArchiveCheck(ctx context.Context) error {
	pending, err := w.source.PendingArchiveBatches(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending batches for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending batches found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending batches on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, batchID := range pending {
		if err := w.archiveBatch(ctx, batchID); err != nil {
			slog.ErrorContext(ctx, "Failed to archive batch during startup",
				"batch_id", batchID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup archive check completed",
		"total", len(pending),
		"archived", successCount,
		"errors", errorCount)

	return nil
}

func (w *ArchiveWorker) archiveBatch(ctx context.Context, batchID string) error {
	txs, err := w.source.ListBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("list batch: %w", err)
	}

	if len(txs) > 0 {
		if err := w.archive.AppendTransactions(ctx, txs); err != nil {
			return fmt.Errorf("append to archive: %w", err)
		}
	}

	// Marking must come after the append succeeded; a crash in between only
	// means the batch is archived again on the next sweep.
	if err := w.source.MarkBatchArchived(ctx, batchID); err != nil {
		return fmt.Errorf("mark batch archived: %w", err)
	}

	slog.InfoContext(ctx, "Successfully archived batch",
		"batch_id", batchID,
		"transactions", len(txs))

	return nil
}
