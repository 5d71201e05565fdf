// Package ingest orchestrates the parse → store → notify pipeline for
// uploaded statement files.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"financas/internal/amqp"
	"financas/internal/statement"
	"financas/internal/store"
)

// EventPublisher publishes the imported event after a batch is stored.
// The AMQP client satisfies this; a nil publisher disables notifications.
type EventPublisher interface {
	PublishStatementImported(ctx context.Context, msg *amqp.StatementImportedMessage) error
}

// File is one uploaded statement: raw bytes plus the original file name.
type File struct {
	Name    string
	Content []byte
}

// Result reports what one file contributed.
type Result struct {
	BatchID  string
	Source   string
	Imported int
	Skipped  int
}

type Service struct {
	parser *statement.Parser
	store  store.Appender
	events EventPublisher
}

func NewService(parser *statement.Parser, st store.Appender, events EventPublisher) *Service {
	return &Service{parser: parser, store: st, events: events}
}

// IngestFile parses one statement and appends the whole batch to the store in
// one step. Malformed lines are skipped, never fatal; only a store failure
// returns an error, and then nothing from this file is kept. The imported
// event is published best-effort, a broker problem never fails the upload.
func (s *Service) IngestFile(ctx context.Context, content []byte, source string) (Result, error) {
	txs, stats := s.parser.Parse(content, source)

	res := Result{
		BatchID:  uuid.NewString(),
		Source:   source,
		Imported: stats.Imported,
		Skipped:  stats.Skipped,
	}

	if len(txs) > 0 {
		batch := store.Batch{ID: res.BatchID, Source: source, Transactions: txs}
		if err := s.store.AppendBatch(ctx, batch); err != nil {
			return Result{}, fmt.Errorf("append batch for %s: %w", source, err)
		}
	}

	s.publishImported(ctx, res)
	return res, nil
}

// IngestAll processes several files concurrently. Each file remains one
// atomic parse-and-append unit; files only interleave at batch granularity.
// A failure in one file does not stop the others, and results keep the input
// order.
func (s *Service) IngestAll(ctx context.Context, files []File) ([]Result, error) {
	results := make([]Result, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			res, err := s.IngestFile(ctx, f.Content, f.Name)
			results[i], errs[i] = res, err
			return nil
		})
	}
	_ = g.Wait()

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}
	return results, firstErr
}

func (s *Service) publishImported(ctx context.Context, res Result) {
	if s.events == nil {
		return
	}
	msg := amqp.NewStatementImportedMessage(res.BatchID, res.Source, res.Imported, res.Skipped)
	if err := s.events.PublishStatementImported(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish imported event",
			"batch_id", res.BatchID,
			"source", res.Source,
			"error", err)
	}
}
