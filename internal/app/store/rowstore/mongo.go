// internal/app/store/rowstore/mongo.go
package rowstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore backs tables with MongoDB collections: one collection per
// table, one document per row. Documents hold the row's cells as an ordered
// array plus a monotonically assigned index, so the positional row contract
// survives a backend that has no inherent row order.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore wraps the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Table returns a table view over the collection of the same name.
func (s *MongoStore) Table(name string) (Table, error) {
	if name == "" {
		return nil, ErrNoSuchTable
	}
	return &mongoTable{c: s.db.Collection(name)}, nil
}

type mongoTable struct {
	c *mongo.Collection
}

// rowDoc is the persisted shape of one row.
type rowDoc struct {
	Idx   int64    `bson:"idx"`
	Cells []string `bson:"cells"`
}

func (t *mongoTable) ReadAllRows(ctx context.Context) ([][]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "idx", Value: 1}})
	cur, err := t.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	defer cur.Close(ctx)

	var rows [][]string
	for cur.Next(ctx) {
		var d rowDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		rows = append(rows, d.Cells)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// AppendRow assigns the next index with a read-then-insert. Concurrent
// appends can race on the index; the unique index on idx rejects the
// loser's insert with a duplicate-key error, so the insert retries with a
// fresh read until it lands or the context expires.
func (t *mongoTable) AppendRow(ctx context.Context, row []string) error {
	for {
		next := int64(0)
		var last rowDoc
		opts := options.FindOne().SetSort(bson.D{{Key: "idx", Value: -1}})
		err := t.c.FindOne(ctx, bson.M{}, opts).Decode(&last)
		switch {
		case err == nil:
			next = last.Idx + 1
		case errors.Is(err, mongo.ErrNoDocuments):
			// first row
		default:
			return fmt.Errorf("find last row: %w", err)
		}

		_, err = t.c.InsertOne(ctx, rowDoc{Idx: next, Cells: row})
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("append row: %w", err)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("append row: %w", ctx.Err())
		}
	}
}

func (t *mongoTable) WriteRow(ctx context.Context, rowIndex int, row []string) error {
	res, err := t.c.UpdateOne(ctx,
		bson.M{"idx": int64(rowIndex)},
		bson.M{"$set": bson.M{"cells": row}},
	)
	if err != nil {
		return fmt.Errorf("write row %d: %w", rowIndex, err)
	}
	if res.MatchedCount == 0 {
		return ErrRowOutOfRange
	}
	return nil
}

func (t *mongoTable) WriteCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	var d rowDoc
	err := t.c.FindOne(ctx, bson.M{"idx": int64(rowIndex)}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrRowOutOfRange
	}
	if err != nil {
		return fmt.Errorf("read row %d: %w", rowIndex, err)
	}

	cells := d.Cells
	for len(cells) <= colIndex {
		cells = append(cells, "")
	}
	cells[colIndex] = value
	return t.WriteRow(ctx, rowIndex, cells)
}
