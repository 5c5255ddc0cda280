// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where everything specific to Lectern lives: the row-table
// and blob-storage backend selection and their credentials.
type AppConfig struct {
	// MongoDB connection configuration (used when RowstoreBackend is "mongo")
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Row-table backend configuration
	RowstoreBackend     string // "mongo", "sheets", or "memory"
	ResourcesTable      string // Table (collection / sheet tab) holding resource rows
	TaxonomyTable       string // Table holding taxonomy rows
	SheetsSpreadsheetID string // Spreadsheet ID (only for the "sheets" backend)

	// Blob-storage backend configuration
	BlobBackend        string // "drive" or "memory"
	DriveRootContainer string // ID of the well-known root folder all paths hang under

	// Service-account credentials for the Google backends
	GoogleCredentialsFile string // Path to a service-account JSON key file

	// Base URL of the deployed service (used in logs and for link building)
	BaseURL string // e.g., "https://portal.example.edu"
}
