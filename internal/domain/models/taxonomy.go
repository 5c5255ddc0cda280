// internal/domain/models/taxonomy.go
package models

// Taxonomy levels, from deepest to shallowest. The level of a resource
// decides which taxonomy fields are required and how deep its storage path
// goes. LevelOther files at the batch root.
const (
	LevelSession = "session"
	LevelSubject = "subject"
	LevelDomain  = "domain"
	LevelTerm    = "term"
	LevelOther   = "other"
)

// TaxonomyLevels is the full set of allowed level identifiers.
var TaxonomyLevels = []string{
	LevelSession,
	LevelSubject,
	LevelDomain,
	LevelTerm,
	LevelOther,
}

// IsValidLevel reports whether l is a known taxonomy level.
func IsValidLevel(l string) bool {
	for _, v := range TaxonomyLevels {
		if v == l {
			return true
		}
	}
	return false
}

// OtherSentinel is appended to every option set and every adjacency list in
// the taxonomy index so selection widgets can always offer a free-text
// fallback.
const OtherSentinel = "Other"

// Hierarchy holds the parent-to-children adjacency maps of the taxonomy.
// Keys are composite parent paths joined with "|": Batches is keyed by
// batch, Terms by "batch|term", Domains by "batch|term|domain". Every value
// list is sorted, deduplicated, and ends with OtherSentinel.
type Hierarchy struct {
	Batches map[string][]string `json:"batches"`
	Terms   map[string][]string `json:"terms"`
	Domains map[string][]string `json:"domains"`
}

// TaxonomyIndex is the derived, read-only dropdown data consumed by the UI
// layer. It is rebuilt from the taxonomy table on every query and never
// persisted.
type TaxonomyIndex struct {
	Batches   []string  `json:"batches"`
	Terms     []string  `json:"terms"`
	Domains   []string  `json:"domains"`
	Subjects  []string  `json:"subjects"`
	Sessions  []string  `json:"sessions"`
	Hierarchy Hierarchy `json:"hierarchy"`
}
