// internal/app/system/indexes/indexes_test.go
package indexes_test

import (
	"testing"

	"github.com/lecternhq/lectern/internal/app/system/indexes"
	"github.com/lecternhq/lectern/internal/testutil"
)

func TestEnsureRowTables(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureRowTables(ctx, db, "resources", "taxonomy"); err != nil {
		t.Fatalf("EnsureRowTables: %v", err)
	}

	// Idempotent: a second run must not fail.
	if err := indexes.EnsureRowTables(ctx, db, "resources", "taxonomy"); err != nil {
		t.Fatalf("EnsureRowTables rerun: %v", err)
	}

	cur, err := db.Collection("resources").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	found := false
	for cur.Next(ctx) {
		var idx struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		if idx.Name == "idx_unique" {
			found = true
		}
	}
	if !found {
		t.Error("idx_unique index not created")
	}
}
