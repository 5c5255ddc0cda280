// internal/app/store/rowstore/memory.go
package rowstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local development.
// Tables spring into existence on first use.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]*MemoryTable
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]*MemoryTable)}
}

// Table returns the named table, creating it if needed.
func (s *MemoryStore) Table(name string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		t = &MemoryTable{}
		s.tables[name] = t
	}
	return t, nil
}

// MemoryTable is a mutex-guarded slice of rows.
type MemoryTable struct {
	mu   sync.Mutex
	rows [][]string
}

// NewMemoryTable returns a table pre-seeded with the given rows.
func NewMemoryTable(rows ...[]string) *MemoryTable {
	t := &MemoryTable{}
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	return t
}

func (t *MemoryTable) ReadAllRows(ctx context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (t *MemoryTable) AppendRow(ctx context.Context, row []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, append([]string(nil), row...))
	return nil
}

func (t *MemoryTable) WriteRow(ctx context.Context, rowIndex int, row []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rowIndex < 0 || rowIndex >= len(t.rows) {
		return ErrRowOutOfRange
	}
	t.rows[rowIndex] = append([]string(nil), row...)
	return nil
}

func (t *MemoryTable) WriteCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rowIndex < 0 || rowIndex >= len(t.rows) {
		return ErrRowOutOfRange
	}
	row := t.rows[rowIndex]
	for len(row) <= colIndex {
		row = append(row, "")
	}
	row[colIndex] = value
	t.rows[rowIndex] = row
	return nil
}
