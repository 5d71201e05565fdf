package worker

import (
	"context"
	"errors"
	"testing"

	"financas/internal/amqp"
	"financas/internal/core"
)

type fakeBatchSource struct {
	batches  map[string][]core.Transaction
	pending  []string
	archived []string

	listErr error
	markErr error
}

func (f *fakeBatchSource) ListBatch(_ context.Context, batchID string) ([]core.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.batches[batchID], nil
}

func (f *fakeBatchSource) PendingArchiveBatches(_ context.Context, limit int) ([]string, error) {
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeBatchSource) MarkBatchArchived(_ context.Context, batchID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.archived = append(f.archived, batchID)
	return nil
}

type fakeArchive struct {
	appended [][]core.Transaction
	err      error
}

func (f *fakeArchive) AppendTransactions(_ context.Context, txs []core.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, txs)
	return nil
}

func sampleBatch() []core.Transaction {
	return []core.Transaction{
		{
			ID:          "extrato.csv:1:1",
			Date:        "01/01/2024",
			Description: "Salário",
			Amount:      core.Money{Cents: 500000},
			Type:        core.Income,
			Category:    "salary",
			Source:      "extrato.csv",
		},
	}
}

func TestHandleImportedMessage(t *testing.T) {
	source := &fakeBatchSource{batches: map[string][]core.Transaction{"b1": sampleBatch()}}
	sink := &fakeArchive{}
	w := NewArchiveWorker(source, sink, 10)

	msg := amqp.NewStatementImportedMessage("b1", "extrato.csv", 1, 0)
	if err := w.HandleImportedMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle message: %v", err)
	}

	if len(sink.appended) != 1 || len(sink.appended[0]) != 1 {
		t.Fatalf("archive got %v", sink.appended)
	}
	if len(source.archived) != 1 || source.archived[0] != "b1" {
		t.Fatalf("archived = %v", source.archived)
	}
}

func TestHandleImportedMessageEmptyBatch(t *testing.T) {
	source := &fakeBatchSource{}
	sink := &fakeArchive{}
	w := NewArchiveWorker(source, sink, 10)

	msg := amqp.NewStatementImportedMessage("b1", "vazio.csv", 0, 3)
	if err := w.HandleImportedMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if len(sink.appended) != 0 {
		t.Fatalf("nothing should be archived, got %v", sink.appended)
	}
	if len(source.archived) != 0 {
		t.Fatalf("nothing should be marked, got %v", source.archived)
	}
}

func TestHandleImportedMessageArchiveFailure(t *testing.T) {
	source := &fakeBatchSource{batches: map[string][]core.Transaction{"b1": sampleBatch()}}
	sink := &fakeArchive{err: errors.New("sheets unavailable")}
	w := NewArchiveWorker(source, sink, 10)

	msg := amqp.NewStatementImportedMessage("b1", "extrato.csv", 1, 0)
	if err := w.HandleImportedMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error when archive append fails")
	}
	if len(source.archived) != 0 {
		t.Fatalf("failed batch must stay pending, archived = %v", source.archived)
	}
}

func TestProcessPendingBatches(t *testing.T) {
	source := &fakeBatchSource{
		batches: map[string][]core.Transaction{
			"b1": sampleBatch(),
			"b2": sampleBatch(),
		},
		pending: []string{"b1", "b2"},
	}
	sink := &fakeArchive{}
	w := NewArchiveWorker(source, sink, 10)

	if err := w.ProcessPendingBatches(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(source.archived) != 2 {
		t.Fatalf("archived = %v", source.archived)
	}
}

func TestProcessPendingBatchesContinuesOnError(t *testing.T) {
	source := &fakeBatchSource{
		batches: map[string][]core.Transaction{"b2": sampleBatch()},
		pending: []string{"b1", "b2"},
	}
	// b1 lists fine but is empty, still gets marked; make listing fail once
	// instead by using a source that errors for b1 only.
	failing := &listFailOnce{fakeBatchSource: source, failID: "b1"}
	sink := &fakeArchive{}
	w := NewArchiveWorker(failing, sink, 10)

	if err := w.ProcessPendingBatches(context.Background()); err != nil {
		t.Fatalf("a single bad batch must not abort the sweep: %v", err)
	}
	if len(source.archived) != 1 || source.archived[0] != "b2" {
		t.Fatalf("archived = %v", source.archived)
	}
}

type listFailOnce struct {
	*fakeBatchSource
	failID string
}

func (l *listFailOnce) ListBatch(ctx context.Context, batchID string) ([]core.Transaction, error) {
	if batchID == l.failID {
		return nil, errors.New("injected failure")
	}
	return l.fakeBatchSource.ListBatch(ctx, batchID)
}

func TestStartupArchiveCheckEmpty(t *testing.T) {
	w := NewArchiveWorker(&fakeBatchSource{}, &fakeArchive{}, 10)
	if err := w.StartupArchiveCheck(context.Background()); err != nil {
		t.Fatalf("startup check: %v", err)
	}
}
