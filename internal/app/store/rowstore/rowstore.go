// Package rowstore defines the tabular backing-store contract the record
// layer is built on: named tables of fixed-width rows addressed by position.
//
// The contract is deliberately minimal (read everything, append, rewrite a
// row, rewrite a cell) so it maps onto a spreadsheet range as readily as
// onto a database collection. Rows have no native unique index; callers own
// any identity semantics. There is no locking either: two writers racing on
// the same row index follow last-writer-wins.
package rowstore

import (
	"context"
	"errors"
)

// ErrNoSuchTable is returned when a named table does not exist in the
// backing store.
var ErrNoSuchTable = errors.New("rowstore: no such table")

// ErrRowOutOfRange is returned when a row index does not address an
// existing row.
var ErrRowOutOfRange = errors.New("rowstore: row index out of range")

// Table is one fixed-width row table. Row indexes are zero-based over data
// rows in insertion order; header rows, where a backend has them, are not
// addressable.
type Table interface {
	// ReadAllRows returns every data row in order. Backends may return rows
	// of differing widths; callers normalize.
	ReadAllRows(ctx context.Context) ([][]string, error)

	// AppendRow adds one row after the last existing row.
	AppendRow(ctx context.Context, row []string) error

	// WriteRow rewrites the row at rowIndex in full.
	WriteRow(ctx context.Context, rowIndex int, row []string) error

	// WriteCell rewrites a single cell, leaving the rest of the row
	// untouched.
	WriteCell(ctx context.Context, rowIndex, colIndex int, value string) error
}

// Store resolves named tables.
type Store interface {
	Table(name string) (Table, error)
}

// Cell returns row[i] or "" when the row is narrower than i+1 columns.
// Backends trim trailing empty cells, so short rows are routine.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
