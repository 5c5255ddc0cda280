// internal/app/store/rowstore/mongo_test.go
package rowstore_test

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/lecternhq/lectern/internal/app/store/rowstore"
	"github.com/lecternhq/lectern/internal/app/system/indexes"
	"github.com/lecternhq/lectern/internal/testutil"
)

func TestMongoTableRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := rowstore.NewMongoStore(db)
	table, err := store.Table("rows")
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	if err := table.AppendRow(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	if err := table.AppendRow(ctx, []string{"c", "d"}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	rows, err := table.ReadAllRows(ctx)
	if err != nil {
		t.Fatalf("ReadAllRows: %v", err)
	}
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}

	if err := table.WriteRow(ctx, 1, []string{"c", "d2"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := table.WriteCell(ctx, 0, 3, "extended"); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}

	rows, err = table.ReadAllRows(ctx)
	if err != nil {
		t.Fatalf("ReadAllRows: %v", err)
	}
	if got := rows[0]; !reflect.DeepEqual(got, []string{"a", "b", "", "extended"}) {
		t.Errorf("row 0 = %v", got)
	}
	if got := rows[1]; !reflect.DeepEqual(got, []string{"c", "d2"}) {
		t.Errorf("row 1 = %v", got)
	}
}

func TestMongoTableConcurrentAppends(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureRowTables(ctx, db, "rows"); err != nil {
		t.Fatalf("EnsureRowTables: %v", err)
	}
	table, err := rowstore.NewMongoStore(db).Table("rows")
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- table.AppendRow(ctx, []string{fmt.Sprintf("row-%d", i)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("AppendRow: %v", err)
		}
	}

	rows, err := table.ReadAllRows(ctx)
	if err != nil {
		t.Fatalf("ReadAllRows: %v", err)
	}
	if len(rows) != writers {
		t.Fatalf("rows = %d, want %d", len(rows), writers)
	}
	seen := make(map[string]bool, writers)
	for _, r := range rows {
		seen[r[0]] = true
	}
	if len(seen) != writers {
		t.Errorf("distinct rows = %d, want %d", len(seen), writers)
	}
}

func TestMongoTableOutOfRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	table, err := rowstore.NewMongoStore(db).Table("rows")
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	if err := table.WriteRow(ctx, 5, []string{"x"}); !errors.Is(err, rowstore.ErrRowOutOfRange) {
		t.Errorf("WriteRow err = %v, want ErrRowOutOfRange", err)
	}
	if err := table.WriteCell(ctx, 5, 0, "x"); !errors.Is(err, rowstore.ErrRowOutOfRange) {
		t.Errorf("WriteCell err = %v, want ErrRowOutOfRange", err)
	}
}
