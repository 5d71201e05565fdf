// Package memory is the in-memory store backend, the default when no SQLite
// path is configured. Appends are serialized through one mutex, which is all
// the locking the single update path needs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"financas/internal/core"
	"financas/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// AppendBatch validates and appends a whole batch under one lock. Either the
// entire batch lands or none of it does.
func (s *Store) AppendBatch(_ context.Context, b store.Batch) error {
	for _, tx := range b.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("batch %s transaction %s: %w", b.ID, tx.ID, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, b.Transactions...)
	return nil
}

// ListTransactions returns a copy in ingestion order.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Len reports the current number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
