// internal/testutil/fixtures.go
package testutil

import (
	"github.com/lecternhq/lectern/internal/app/store/rowstore"
)

// SeedTaxonomyTable returns an in-memory taxonomy table covering two
// batches with overlapping terms and domains.
func SeedTaxonomyTable() *rowstore.MemoryTable {
	return rowstore.NewMemoryTable(
		[]string{"B1", "T1", "D1", "S1"},
		[]string{"B1", "T1", "D1", "S2"},
		[]string{"B1", "T2", "D2", "S3"},
		[]string{"B2", "T1", "D1", "S1"},
	)
}
