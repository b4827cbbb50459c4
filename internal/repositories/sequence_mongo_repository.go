package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSequenceRepository implements SequenceRepository on a counters
// collection. Each sequence is a single document {_id: name, seq: n}; Next
// increments seq atomically with $inc, so concurrent creators can never
// observe the same value. This replaces the scan-for-max-id pattern, which
// loses updates under concurrent writers.
type MongoSequenceRepository struct {
	collection *mongo.Collection
}

// NewMongoSequenceRepository creates a sequence repository backed by the
// "counters" collection of db.
func NewMongoSequenceRepository(db *mongo.Database) *MongoSequenceRepository {
	return &MongoSequenceRepository{
		collection: db.Collection("counters"),
	}
}

// Next returns the next value of the named sequence, starting at 1.
func (r *MongoSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return counter.Seq, nil
}
