package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frcparts/components-api/internal/core/domain"
)

const collectionInventoryEvents = "inventory_events"

// ActivityRepository stores the append-only inventory activity log.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionInventoryEvents)}
}

func (r *ActivityRepository) Insert(ctx context.Context, event *domain.InventoryEvent) error {
	doc := bson.M{
		"team_id":      event.TeamID,
		"component_id": event.ComponentID,
		"action":       string(event.Action),
		"actor":        event.Actor,
		"timestamp":    event.Timestamp.UTC(),
		"recorded_at":  time.Now().UTC(),
	}
	if event.Quantity != nil {
		doc["quantity"] = *event.Quantity
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByTeam returns at most limit events of the team, newest first.
func (r *ActivityRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]*domain.InventoryEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"team_id": teamID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.InventoryEvent{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the per-team timeline index.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "team_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
