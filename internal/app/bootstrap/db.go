// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"

	"github.com/lecternhq/lectern/internal/app/store/blob"
	"github.com/lecternhq/lectern/internal/app/store/rowstore"
	"github.com/lecternhq/lectern/internal/app/system/indexes"
)

// OAuth scopes for the Google backends.
const (
	scopeDrive  = "https://www.googleapis.com/auth/drive"
	scopeSheets = "https://www.googleapis.com/auth/spreadsheets"
)

// ConnectDB builds the storage backends selected by config: the row-table
// store (mongo, sheets, or memory) and the blob service (drive or memory).
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	switch appCfg.RowstoreBackend {
	case "mongo":
		client, err := connectMongo(ctx, appCfg)
		if err != nil {
			return DBDeps{}, err
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		store := rowstore.NewMongoStore(deps.MongoDatabase)
		if err := bindTables(&deps, store, appCfg); err != nil {
			return DBDeps{}, err
		}
		logger.Info("row tables on MongoDB",
			zap.String("database", appCfg.MongoDatabase))

	case "sheets":
		hc, err := googleClient(ctx, appCfg.GoogleCredentialsFile, scopeSheets)
		if err != nil {
			return DBDeps{}, fmt.Errorf("sheets credentials: %w", err)
		}
		store := rowstore.NewSheetsStore(hc, rowstore.DefaultSheetsBaseURL, appCfg.SheetsSpreadsheetID)
		if err := bindTables(&deps, store, appCfg); err != nil {
			return DBDeps{}, err
		}
		logger.Info("row tables on Google Sheets",
			zap.String("spreadsheet_id", appCfg.SheetsSpreadsheetID))

	case "memory":
		if err := bindTables(&deps, rowstore.NewMemoryStore(), appCfg); err != nil {
			return DBDeps{}, err
		}
		logger.Warn("row tables on the in-memory backend; data will not survive a restart")

	default:
		return DBDeps{}, fmt.Errorf("unknown rowstore_backend %q", appCfg.RowstoreBackend)
	}

	switch appCfg.BlobBackend {
	case "drive":
		hc, err := googleClient(ctx, appCfg.GoogleCredentialsFile, scopeDrive)
		if err != nil {
			return DBDeps{}, fmt.Errorf("drive credentials: %w", err)
		}
		deps.Blobs = blob.NewDriveService(hc, blob.DefaultDriveAPIBase, blob.DefaultDriveUploadBase)
		deps.BlobRootID = appCfg.DriveRootContainer
		logger.Info("blob storage on Google Drive",
			zap.String("root_container", appCfg.DriveRootContainer))

	case "memory":
		deps.Blobs = blob.NewMemoryService()
		deps.BlobRootID = blob.MemoryRootID
		logger.Warn("blob storage on the in-memory backend; uploads will not survive a restart")

	default:
		return DBDeps{}, fmt.Errorf("unknown blob_backend %q", appCfg.BlobBackend)
	}

	return deps, nil
}

func connectMongo(ctx context.Context, appCfg AppConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func bindTables(deps *DBDeps, store rowstore.Store, appCfg AppConfig) error {
	resources, err := store.Table(appCfg.ResourcesTable)
	if err != nil {
		return fmt.Errorf("open resources table %q: %w", appCfg.ResourcesTable, err)
	}
	taxonomy, err := store.Table(appCfg.TaxonomyTable)
	if err != nil {
		return fmt.Errorf("open taxonomy table %q: %w", appCfg.TaxonomyTable, err)
	}
	deps.Resources = resources
	deps.Taxonomy = taxonomy
	return nil
}

// googleClient builds an HTTP client authorized by the service-account key
// file, using the two-legged JWT flow.
func googleClient(ctx context.Context, credentialsFile string, scopes ...string) (*http.Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	return conf.Client(ctx), nil
}

// EnsureSchema sets up indexes or schema as needed. Only the Mongo
// row-table backend has any schema to speak of.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	return indexes.EnsureRowTables(ctx, deps.MongoDatabase, appCfg.ResourcesTable, appCfg.TaxonomyTable)
}
