package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frcparts/components-api/internal/core/domain"
)

const collectionPublicComponents = "public_components"

// CatalogRepository stores the shared public catalog keyed by part number.
type CatalogRepository struct {
	col *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{col: db.Collection(collectionPublicComponents)}
}

func (r *CatalogRepository) Create(ctx context.Context, c *domain.PublicComponent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrComponentExists
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.PublicComponent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.PublicComponent
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrComponentNotFound
		}
		return nil, fmt.Errorf("find component: %w", err)
	}
	return &c, nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]*domain.PublicComponent, error) {
	return r.find(ctx, bson.M{})
}

// Search matches text against name or description, and category and vendor
// as case-insensitive substrings. MaxCost is inclusive.
func (r *CatalogRepository) Search(ctx context.Context, f domain.CatalogFilter) ([]*domain.PublicComponent, error) {
	return r.find(ctx, searchFilter(f))
}

func searchFilter(f domain.CatalogFilter) bson.M {
	filter := bson.M{}
	if f.Text != "" {
		rx := containsRegex(f.Text)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
		}
	}
	if f.Category != "" {
		filter["category"] = containsRegex(f.Category)
	}
	if f.Vendor != "" {
		filter["vendor"] = containsRegex(f.Vendor)
	}
	if f.MaxCost > 0 {
		filter["cost"] = bson.M{"$lte": f.MaxCost}
	}
	return filter
}

func containsRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func (r *CatalogRepository) find(ctx context.Context, filter bson.M) ([]*domain.PublicComponent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find components: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.PublicComponent{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode components: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) Update(ctx context.Context, id string, p domain.PublicComponentPatch) (bool, error) {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Vendor != nil {
		set["vendor"] = *p.Vendor
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Cost != nil {
		set["cost"] = *p.Cost
	}
	if p.Source != nil {
		set["source"] = *p.Source
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if len(set) == 0 {
		return false, domain.ErrNoFieldsToUpdate
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *CatalogRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *CatalogRepository) DistinctVendors(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "vendor")
}

func (r *CatalogRepository) distinct(ctx context.Context, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.col.Distinct(ctx, field, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// EnsureIndexes creates the lookup indexes used by search and distinct.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "vendor", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
