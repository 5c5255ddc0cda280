package blob_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lecternhq/lectern/internal/app/store/blob"
	"github.com/lecternhq/lectern/internal/domain/models"
)

func TestResolvePath_Lengths(t *testing.T) {
	// With all required fields present, path length is 2 + depth(level).
	tests := []struct {
		level string
		want  []string
	}{
		{models.LevelTerm, []string{"B1", "Resources", "T1"}},
		{models.LevelDomain, []string{"B1", "Resources", "T1", "D1"}},
		{models.LevelSubject, []string{"B1", "Resources", "T1", "D1", "S1"}},
		{models.LevelSession, []string{"B1", "Resources", "T1", "D1", "S1"}},
		{models.LevelOther, []string{"B1", "Resources"}},
	}
	for _, tc := range tests {
		got := blob.ResolvePath("B1", tc.level, "T1", "D1", "S1")
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("level %s: got %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestResolvePath_SessionSharesSubjectContainer(t *testing.T) {
	subj := blob.ResolvePath("B1", models.LevelSubject, "T1", "D1", "S1")
	sess := blob.ResolvePath("B1", models.LevelSession, "T1", "D1", "S1")
	if !reflect.DeepEqual(subj, sess) {
		t.Errorf("session path %v should equal subject path %v", sess, subj)
	}
}

func TestResolvePath_DegradesOnMissingFields(t *testing.T) {
	// Term level without a term falls back to the batch/Resources prefix.
	got := blob.ResolvePath("B1", models.LevelTerm, "", "", "")
	if !reflect.DeepEqual(got, []string{"B1", "Resources"}) {
		t.Errorf("got %v", got)
	}

	// Subject level missing the domain stops after the term segment.
	got = blob.ResolvePath("B1", models.LevelSubject, "T1", "", "S1")
	if !reflect.DeepEqual(got, []string{"B1", "Resources", "T1"}) {
		t.Errorf("got %v", got)
	}
}

func TestResolvePath_EmptyBatch(t *testing.T) {
	if got := blob.ResolvePath("", models.LevelTerm, "T1", "", ""); got != nil {
		t.Errorf("expected nil path without a batch, got %v", got)
	}
}

func TestEnsurePath_CreatesAndReuses(t *testing.T) {
	svc := blob.NewMemoryService()
	ctx := context.Background()
	path := []string{"B1", "Resources", "T1"}

	first, err := blob.EnsurePath(ctx, svc, blob.MemoryRootID, path)
	if err != nil {
		t.Fatalf("EnsurePath failed: %v", err)
	}
	if first.Name != "T1" {
		t.Errorf("final container: got %q, want T1", first.Name)
	}
	if svc.ContainerCount() != 3 {
		t.Errorf("container count: got %d, want 3", svc.ContainerCount())
	}

	// A second walk reuses every container rather than duplicating.
	second, err := blob.EnsurePath(ctx, svc, blob.MemoryRootID, path)
	if err != nil {
		t.Fatalf("EnsurePath failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("expected get-or-create to return the existing container")
	}
	if svc.ContainerCount() != 3 {
		t.Errorf("container count after reuse: got %d, want 3", svc.ContainerCount())
	}
}

func TestEnsurePath_Empty(t *testing.T) {
	_, err := blob.EnsurePath(context.Background(), blob.NewMemoryService(), blob.MemoryRootID, nil)
	if !errors.Is(err, blob.ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got %v", err)
	}
}
