package events

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "attendance_events"

type MongoRecorder struct {
	coll *mongo.Collection
}

func NewMongoRecorder(db *mongo.Database) *MongoRecorder {
	return &MongoRecorder{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the lookup index used by Recent.
func (r *MongoRecorder) EnsureIndexes(ctx context.Context) {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "at", Value: -1}},
	})
	if err != nil {
		log.Printf("[MONGO] attendance_events index: %v", err)
	}
}

func (r *MongoRecorder) Record(ctx context.Context, ev Event) error {
	if _, err := r.coll.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("insert attendance event: %w", err)
	}
	return nil
}

func (r *MongoRecorder) Recent(ctx context.Context, f Filter, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	filter := bson.M{}
	if f.StaffID != "" {
		filter["staff_id"] = f.StaffID
	}
	if f.Outcome != "" {
		filter["outcome"] = f.Outcome
	}
	if f.Since != nil {
		filter["at"] = bson.M{"$gte": *f.Since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find attendance events: %w", err)
	}
	out := make([]Event, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode attendance events: %w", err)
	}
	return out, nil
}
