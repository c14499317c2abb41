package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frcparts/components-api/internal/core/domain"
)

const (
	collectionTeamComponents = "team_components"
	sequenceTeamComponents   = "team_components"
)

// InventoryRepository stores team inventory rows. It does not check
// ownership; the inventory service guards every call.
type InventoryRepository struct {
	col *mongo.Collection
	seq *Sequence
	now func() time.Time
}

func NewInventoryRepository(db *mongo.Database, seq *Sequence) *InventoryRepository {
	return &InventoryRepository{
		col: db.Collection(collectionTeamComponents),
		seq: seq,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *InventoryRepository) Create(ctx context.Context, c *domain.TeamComponent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, sequenceTeamComponents)
	if err != nil {
		return err
	}
	c.ID = id
	c.LastUpdated = r.now()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert team component: %w", err)
	}
	return nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*domain.TeamComponent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.TeamComponent
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrComponentNotFound
		}
		return nil, fmt.Errorf("find team component: %w", err)
	}
	return &c, nil
}

func (r *InventoryRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.TeamComponent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"team_id": teamID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list team components: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.TeamComponent{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode team components: %w", err)
	}
	return out, nil
}

func (r *InventoryRepository) Update(ctx context.Context, id int64, p domain.TeamComponentPatch) (bool, error) {
	set := inventoryPatchSet(p)
	if len(set) == 0 {
		return false, domain.ErrNoFieldsToUpdate
	}
	return r.set(ctx, id, set)
}

// inventoryPatchSet builds the $set document for the non-nil patch fields.
func inventoryPatchSet(p domain.TeamComponentPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Vendor != nil {
		set["vendor"] = *p.Vendor
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	if p.AddedBy != nil {
		set["added_by"] = *p.AddedBy
	}
	if p.ImageURL != nil {
		set["image_url"] = *p.ImageURL
	}
	if p.CADFileURL != nil {
		set["cad_file_url"] = *p.CADFileURL
	}
	return set
}

func (r *InventoryRepository) SetQuantity(ctx context.Context, id int64, quantity int) (bool, error) {
	return r.set(ctx, id, bson.M{"quantity": quantity})
}

// set applies the fields and bumps last_updated.
func (r *InventoryRepository) set(ctx context.Context, id int64, set bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["last_updated"] = r.now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the team lookup index.
func (r *InventoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "team_id", Value: 1}},
	})
	return err
}
