package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the repositories rely on:
// one cart per session and no two orders sharing an order number. The
// insert paths map the resulting duplicate-key errors to 400s.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := db.Collection("carts").Indexes().CreateMany(ctx, cartIndexes()); err != nil {
		return err
	}

	_, err := db.Collection("orders").Indexes().CreateMany(ctx, orderIndexes())
	return err
}

func cartIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

func orderIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}
