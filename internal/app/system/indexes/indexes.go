// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureRowTables is called at startup for the Mongo row-table backend. Rows
are addressed by their positional index, so every table collection needs a
unique index on idx. Index creation is idempotent; errors are aggregated
so any problem is visible and startup can fail fast.
*/
func EnsureRowTables(ctx context.Context, db *mongo.Database, tables ...string) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "idx", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_unique"),
	}

	var problems []string
	for _, name := range tables {
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		_, err := db.Collection(name).Indexes().CreateOne(cctx, model)
		cancel()
		if err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("ensure row-table indexes: %s", strings.Join(problems, "; "))
	}
	return nil
}
