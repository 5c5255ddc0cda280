// internal/app/features/taxonomy/handler_test.go
package taxonomy_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	apierrors "github.com/lecternhq/lectern/internal/app/features/errors"
	"github.com/lecternhq/lectern/internal/app/features/taxonomy"
	taxonomystore "github.com/lecternhq/lectern/internal/app/store/taxonomy"
	"github.com/lecternhq/lectern/internal/domain/models"
	"github.com/lecternhq/lectern/internal/testutil"
)

func TestHandleIndex(t *testing.T) {
	table := testutil.SeedTaxonomyTable()
	logger := zap.NewNop()
	h := taxonomy.NewHandler(taxonomystore.New(table), apierrors.NewErrorLogger(logger), logger)
	router := taxonomy.Routes(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Success bool                 `json:"success"`
		Data    models.TaxonomyIndex `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatal("envelope not successful")
	}
	if len(env.Data.Batches) != 3 || env.Data.Batches[0] != "B1" {
		t.Errorf("batches = %v", env.Data.Batches)
	}
	if got := env.Data.Hierarchy.Batches["B1"]; len(got) != 3 || got[0] != "T1" || got[2] != models.OtherSentinel {
		t.Errorf("terms under B1 = %v", got)
	}
	if len(env.Data.Sessions) != taxonomystore.MaxSessions+1 {
		t.Errorf("sessions = %d entries", len(env.Data.Sessions))
	}
}
