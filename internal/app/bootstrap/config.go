// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Lectern.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, rowstore_backend, etc.
//   - Environment variables: LECTERN_MONGO_URI, LECTERN_ROWSTORE_BACKEND, etc.
//   - Command-line flags: --mongo_uri, --rowstore_backend, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "lectern", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Row-table backend
	{Name: "rowstore_backend", Default: "mongo", Desc: "Row-table backend: 'mongo', 'sheets', or 'memory'"},
	{Name: "resources_table", Default: "resources", Desc: "Table holding resource rows"},
	{Name: "taxonomy_table", Default: "taxonomy", Desc: "Table holding taxonomy rows"},
	{Name: "sheets_spreadsheet_id", Default: "", Desc: "Google Sheets spreadsheet ID (sheets backend only)"},

	// Blob-storage backend
	{Name: "blob_backend", Default: "drive", Desc: "Blob-storage backend: 'drive' or 'memory'"},
	{Name: "drive_root_container", Default: "", Desc: "Google Drive folder ID all storage paths hang under"},

	// Google service-account credentials
	{Name: "google_credentials_file", Default: "", Desc: "Path to a Google service-account JSON key file"},

	// Base URL of the deployed service
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL of the deployed service"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, LECTERN_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LECTERN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		RowstoreBackend:     appValues.String("rowstore_backend"),
		ResourcesTable:      appValues.String("resources_table"),
		TaxonomyTable:       appValues.String("taxonomy_table"),
		SheetsSpreadsheetID: appValues.String("sheets_spreadsheet_id"),

		BlobBackend:        appValues.String("blob_backend"),
		DriveRootContainer: appValues.String("drive_root_container"),

		GoogleCredentialsFile: appValues.String("google_credentials_file"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs. Backend selections are checked
// here so misconfiguration fails before any connection attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.RowstoreBackend {
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	case "sheets":
		if appCfg.SheetsSpreadsheetID == "" {
			return fmt.Errorf("rowstore_backend 'sheets' requires sheets_spreadsheet_id")
		}
		if appCfg.GoogleCredentialsFile == "" {
			return fmt.Errorf("rowstore_backend 'sheets' requires google_credentials_file")
		}
	case "memory":
		// nothing to validate
	default:
		return fmt.Errorf("unknown rowstore_backend %q (want 'mongo', 'sheets', or 'memory')", appCfg.RowstoreBackend)
	}

	switch appCfg.BlobBackend {
	case "drive":
		if appCfg.DriveRootContainer == "" {
			return fmt.Errorf("blob_backend 'drive' requires drive_root_container")
		}
		if appCfg.GoogleCredentialsFile == "" {
			return fmt.Errorf("blob_backend 'drive' requires google_credentials_file")
		}
	case "memory":
		// nothing to validate
	default:
		return fmt.Errorf("unknown blob_backend %q (want 'drive' or 'memory')", appCfg.BlobBackend)
	}

	if appCfg.ResourcesTable == "" || appCfg.TaxonomyTable == "" {
		return fmt.Errorf("resources_table and taxonomy_table must not be empty")
	}

	return nil
}
