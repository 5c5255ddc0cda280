// internal/app/store/taxonomy/taxonomystore.go

// Package taxonomystore derives the dropdown index from the taxonomy
// table. The index is rebuilt from scratch on every request; the table is
// small enough that caching has not been worth the staleness bookkeeping.
package taxonomystore

import (
	"context"
	"fmt"
	"sort"

	"github.com/lecternhq/lectern/internal/app/store/rowstore"
	"github.com/lecternhq/lectern/internal/domain/models"
)

// Taxonomy table columns. Like the resources table, the order is part of
// the storage contract.
const (
	colBatch = iota
	colTerm
	colDomain
	colSubject
)

// MaxSessions bounds the generated session name list.
const MaxSessions = 100

// Store builds taxonomy indexes from a row table.
type Store struct {
	table rowstore.Table
}

func New(table rowstore.Table) *Store {
	return &Store{table: table}
}

// Build scans the taxonomy table and produces the full dropdown index:
// sorted deduplicated option sets plus the parent-to-children adjacency
// maps. The Other sentinel ends every list so selection widgets always
// have a free-text escape hatch.
func (s *Store) Build(ctx context.Context) (models.TaxonomyIndex, error) {
	rows, err := s.table.ReadAllRows(ctx)
	if err != nil {
		return models.TaxonomyIndex{}, fmt.Errorf("read taxonomy rows: %w", err)
	}

	batches := newSet()
	terms := newSet()
	domains := newSet()
	subjects := newSet()

	termsByBatch := map[string]*set{}
	domainsByTerm := map[string]*set{}
	subjectsByDomain := map[string]*set{}

	for _, row := range rows {
		b := rowstore.Cell(row, colBatch)
		t := rowstore.Cell(row, colTerm)
		d := rowstore.Cell(row, colDomain)
		sub := rowstore.Cell(row, colSubject)
		if b == "" {
			continue
		}

		batches.add(b)
		if t == "" {
			continue
		}
		terms.add(t)
		adj(termsByBatch, b).add(t)
		if d == "" {
			continue
		}
		domains.add(d)
		adj(domainsByTerm, b+"|"+t).add(d)
		if sub == "" {
			continue
		}
		subjects.add(sub)
		adj(subjectsByDomain, b+"|"+t+"|"+d).add(sub)
	}

	idx := models.TaxonomyIndex{
		Batches:  batches.sortedWithOther(),
		Terms:    terms.sortedWithOther(),
		Domains:  domains.sortedWithOther(),
		Subjects: subjects.sortedWithOther(),
		Sessions: sessionNames(),
		Hierarchy: models.Hierarchy{
			Batches: flatten(termsByBatch),
			Terms:   flatten(domainsByTerm),
			Domains: flatten(subjectsByDomain),
		},
	}
	return idx, nil
}

// sessionNames is the fixed "Session 1".."Session 100" list plus the
// sentinel. Sessions are not stored in the taxonomy table.
func sessionNames() []string {
	out := make([]string, 0, MaxSessions+1)
	for i := 1; i <= MaxSessions; i++ {
		out = append(out, fmt.Sprintf("Session %d", i))
	}
	return append(out, models.OtherSentinel)
}

type set struct {
	seen map[string]struct{}
}

func newSet() *set {
	return &set{seen: make(map[string]struct{})}
}

func (s *set) add(v string) {
	s.seen[v] = struct{}{}
}

func (s *set) sortedWithOther() []string {
	out := make([]string, 0, len(s.seen)+1)
	for v := range s.seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return append(out, models.OtherSentinel)
}

func adj(m map[string]*set, key string) *set {
	if s, ok := m[key]; ok {
		return s
	}
	s := newSet()
	m[key] = s
	return s
}

func flatten(m map[string]*set) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, s := range m {
		out[k] = s.sortedWithOther()
	}
	return out
}
