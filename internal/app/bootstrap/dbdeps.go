// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lecternhq/lectern/internal/app/store/blob"
	"github.com/lecternhq/lectern/internal/app/store/rowstore"
)

// DBDeps holds database/back-end dependencies for the app.
//
// The Mongo client and database are nil when the row tables run on the
// sheets or memory backends; everything downstream depends only on the
// rowstore and blob interfaces.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Resources rowstore.Table
	Taxonomy  rowstore.Table

	Blobs      blob.Service
	BlobRootID string
}
