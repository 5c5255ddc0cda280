// internal/app/store/resources/row_test.go
package resourcestore

import (
	"reflect"
	"testing"
	"time"

	"github.com/lecternhq/lectern/internal/domain/models"
)

func TestRowRoundTrip(t *testing.T) {
	created := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	edited := created.Add(48 * time.Hour)

	r := models.Resource{
		ID:               "lx9k2-ab12cd34",
		PublishFlag:      "yes",
		PostedBy:         "teacher@example.edu",
		CreatedAt:        created,
		EditedAt:         &edited,
		EditedBy:         "editor@example.edu",
		VisibleFrom:      "2026-02-01",
		VisibleUntil:     "2026-06-30",
		Batch:            "B1",
		ShowOtherBatches: true,
		Title:            "Midterm review",
		Description:      "Review pack for the midterm",
		Term:             "T1",
		Domain:           "D1",
		Subject:          "S1",
		SessionName:      "Session 7",
		Level:            models.LevelSession,
		Type:             models.TypeSlides,
		Priority:         "high",
		Links: []models.Link{
			{Name: "Recording", URL: "https://example.edu/rec"},
		},
		Files: []models.FileRef{
			{Name: "deck.pdf", URL: "memblob://file/1"},
			{Name: "notes.pdf", URL: "memblob://file/2"},
			{}, {}, {},
		},
		ContainerURL: "memblob://container/9",
		FileCount:    2,
		Status:       models.StatusPublished,
		Notes:        "check audio",
	}

	row := encodeRow(r)
	if len(row) != rowWidth {
		t.Fatalf("row width = %d, want %d", len(row), rowWidth)
	}
	if row[colStatus] != models.StatusPublished {
		t.Errorf("status cell = %q", row[colStatus])
	}

	got := decodeRow(row)
	if !reflect.DeepEqual(got, r) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, r)
	}
}

func TestDecodeRowLenient(t *testing.T) {
	// A short row from before columns were appended.
	row := []string{"id-1", "yes", "someone"}

	r := decodeRow(row)
	if r.ID != "id-1" {
		t.Errorf("ID = %q", r.ID)
	}
	if !r.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero", r.CreatedAt)
	}
	if r.EditedAt != nil {
		t.Errorf("EditedAt = %v, want nil", r.EditedAt)
	}
	if len(r.Files) != models.MaxFileSlots {
		t.Fatalf("file slots = %d, want %d", len(r.Files), models.MaxFileSlots)
	}
	if r.FileCount != 0 {
		t.Errorf("FileCount = %d, want 0", r.FileCount)
	}
	if len(r.Links) != 0 {
		t.Errorf("links = %+v, want none", r.Links)
	}
}

func TestDecodeRowFileCountFallback(t *testing.T) {
	r := models.Resource{
		ID:     "id-2",
		Files:  []models.FileRef{{Name: "a.pdf", URL: "u"}, {}, {}, {}, {}},
		Status: models.StatusPublished,
	}
	row := encodeRow(r)
	row[colFileCount] = "not-a-number"

	got := decodeRow(row)
	if got.FileCount != 1 {
		t.Errorf("FileCount = %d, want recount of 1", got.FileCount)
	}
}

func TestDecodeBoolVariants(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "yes", "1"} {
		if !decodeBool(v) {
			t.Errorf("decodeBool(%q) = false", v)
		}
	}
	for _, v := range []string{"", "false", "no", "0", "maybe"} {
		if decodeBool(v) {
			t.Errorf("decodeBool(%q) = true", v)
		}
	}
}
