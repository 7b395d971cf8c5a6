// Package memory implements the session record store in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// Store is a RecordStore backed by a slice.
type Store struct {
	mu   sync.RWMutex
	rows []domain.FlatRow
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Append adds rows after the existing ones.
func (s *Store) Append(_ context.Context, rows []domain.FlatRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, cloneRows(rows)...)
	return nil
}

// All returns a copy of every row in insertion order.
func (s *Store) All(_ context.Context) ([]domain.FlatRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.rows), nil
}

// Replace swaps the whole table.
func (s *Store) Replace(_ context.Context, rows []domain.FlatRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = cloneRows(rows)
	return nil
}

// Clear removes every row.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	return nil
}

// Count returns the number of rows.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func cloneRows(rows []domain.FlatRow) []domain.FlatRow {
	out := make([]domain.FlatRow, len(rows))
	copy(out, rows)
	for i := range out {
		if items := out[i].Validation.Items; items != nil {
			out[i].Validation.Items = make([]domain.ChecklistItem, len(items))
			copy(out[i].Validation.Items, items)
		}
	}
	return out
}
