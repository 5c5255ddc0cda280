package rowstore_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lecternhq/lectern/internal/app/store/rowstore"
)

func TestMemoryTable_AppendAndRead(t *testing.T) {
	store := rowstore.NewMemoryStore()
	tbl, err := store.Table("resources")
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	ctx := context.Background()

	if err := tbl.AppendRow(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
	if err := tbl.AppendRow(ctx, []string{"c"}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}

	rows, err := tbl.ReadAllRows(ctx)
	if err != nil {
		t.Fatalf("ReadAllRows failed: %v", err)
	}
	want := [][]string{{"a", "b"}, {"c"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows: got %v, want %v", rows, want)
	}
}

func TestMemoryTable_WriteRow(t *testing.T) {
	tbl := rowstore.NewMemoryTable([]string{"a"}, []string{"b"})
	ctx := context.Background()

	if err := tbl.WriteRow(ctx, 1, []string{"B", "extra"}); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}
	rows, _ := tbl.ReadAllRows(ctx)
	if !reflect.DeepEqual(rows[1], []string{"B", "extra"}) {
		t.Errorf("row 1: got %v", rows[1])
	}

	if err := tbl.WriteRow(ctx, 5, []string{"x"}); !errors.Is(err, rowstore.ErrRowOutOfRange) {
		t.Errorf("expected ErrRowOutOfRange, got %v", err)
	}
}

func TestMemoryTable_WriteCell_ExtendsShortRow(t *testing.T) {
	tbl := rowstore.NewMemoryTable([]string{"a"})
	ctx := context.Background()

	if err := tbl.WriteCell(ctx, 0, 3, "d"); err != nil {
		t.Fatalf("WriteCell failed: %v", err)
	}
	rows, _ := tbl.ReadAllRows(ctx)
	want := []string{"a", "", "", "d"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row 0: got %v, want %v", rows[0], want)
	}
}

func TestMemoryTable_ReadIsolatesCallers(t *testing.T) {
	tbl := rowstore.NewMemoryTable([]string{"a"})
	ctx := context.Background()

	rows, _ := tbl.ReadAllRows(ctx)
	rows[0][0] = "mutated"

	again, _ := tbl.ReadAllRows(ctx)
	if again[0][0] != "a" {
		t.Error("ReadAllRows must return copies, not the backing slices")
	}
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"x", "y"}
	if got := rowstore.Cell(row, 1); got != "y" {
		t.Errorf("Cell(1): got %q", got)
	}
	if got := rowstore.Cell(row, 7); got != "" {
		t.Errorf("Cell(7): got %q, want empty", got)
	}
	if got := rowstore.Cell(row, -1); got != "" {
		t.Errorf("Cell(-1): got %q, want empty", got)
	}
}
