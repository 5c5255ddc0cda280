// internal/app/bootstrap/bootstrap_test.go
package bootstrap

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lecternhq/lectern/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func memoryConfig() AppConfig {
	return AppConfig{
		RowstoreBackend: "memory",
		BlobBackend:     "memory",
		ResourcesTable:  "resources",
		TaxonomyTable:   "taxonomy",
	}
}

func TestValidateConfig_MemoryBackends(t *testing.T) {
	if err := ValidateConfig(nil, memoryConfig(), testLogger()); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}

func TestValidateConfig_SheetsRequiresSpreadsheet(t *testing.T) {
	cfg := memoryConfig()
	cfg.RowstoreBackend = "sheets"
	cfg.GoogleCredentialsFile = "/etc/lectern/sa.json"

	err := ValidateConfig(nil, cfg, testLogger())
	if err == nil || !strings.Contains(err.Error(), "sheets_spreadsheet_id") {
		t.Fatalf("err = %v, want missing sheets_spreadsheet_id", err)
	}
}

func TestValidateConfig_DriveRequiresRootContainer(t *testing.T) {
	cfg := memoryConfig()
	cfg.BlobBackend = "drive"
	cfg.GoogleCredentialsFile = "/etc/lectern/sa.json"

	err := ValidateConfig(nil, cfg, testLogger())
	if err == nil || !strings.Contains(err.Error(), "drive_root_container") {
		t.Fatalf("err = %v, want missing drive_root_container", err)
	}
}

func TestValidateConfig_RejectsUnknownBackends(t *testing.T) {
	cfg := memoryConfig()
	cfg.RowstoreBackend = "postgres"
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Fatal("expected error for unknown rowstore backend")
	}

	cfg = memoryConfig()
	cfg.BlobBackend = "s3"
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Fatal("expected error for unknown blob backend")
	}
}

func TestValidateConfig_RequiresTableNames(t *testing.T) {
	cfg := memoryConfig()
	cfg.TaxonomyTable = ""
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Fatal("expected error for empty table name")
	}
}

func TestBuildHandler_MemoryBackends(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps, err := ConnectDB(ctx, nil, memoryConfig(), testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.Resources == nil || deps.Taxonomy == nil || deps.Blobs == nil {
		t.Fatalf("deps incomplete: %+v", deps)
	}

	h, err := BuildHandler(nil, memoryConfig(), deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	if h == nil {
		t.Fatal("BuildHandler returned nil handler")
	}
}
