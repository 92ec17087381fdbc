package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

const (
	activityCollection   = "auth_activity"
	defaultActivityLimit = 50
)

// ActivityRepository persists the auth activity trail to MongoDB so the
// trail survives gateway restarts and is shared across replicas.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	At         time.Time `bson:"at"`
	SID        string    `bson:"sid,omitempty"`
	Actor      string    `bson:"actor,omitempty"`
	Operation  string    `bson:"operation"`
	Result     string    `bson:"result"`
	Detail     string    `bson:"detail,omitempty"`
	RemoteAddr string    `bson:"remote_addr,omitempty"`
}

func (r *ActivityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) error {
	doc := activityDoc{
		At:         entry.At.UTC(),
		SID:        entry.SID,
		Actor:      entry.Actor,
		Operation:  entry.Operation,
		Result:     entry.Result,
		Detail:     entry.Detail,
		RemoteAddr: entry.RemoteAddr,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (r *ActivityRepository) List(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ActivityEntry
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		out = append(out, &domain.ActivityEntry{
			At:         doc.At,
			SID:        doc.SID,
			Actor:      doc.Actor,
			Operation:  doc.Operation,
			Result:     doc.Result,
			Detail:     doc.Detail,
			RemoteAddr: doc.RemoteAddr,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}
