package ports

import (
	"context"

	"github.com/frcparts/components-api/internal/core/domain"
)

// CatalogRepository persists the shared public catalog.
type CatalogRepository interface {
	// Create returns domain.ErrComponentExists when the id is taken.
	Create(ctx context.Context, c *domain.PublicComponent) error
	FindByID(ctx context.Context, id string) (*domain.PublicComponent, error)
	List(ctx context.Context) ([]*domain.PublicComponent, error)
	Search(ctx context.Context, filter domain.CatalogFilter) ([]*domain.PublicComponent, error)
	// Update applies the non-nil patch fields. It reports false when no row matched.
	Update(ctx context.Context, id string, patch domain.PublicComponentPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctVendors(ctx context.Context) ([]string, error)
}

// CatalogCache stores the distinct category/vendor lists. A miss is
// (nil, false, nil).
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, values []string) error
	Invalidate(ctx context.Context) error
}

type CatalogService interface {
	Create(ctx context.Context, c *domain.PublicComponent) error
	Get(ctx context.Context, id string) (*domain.PublicComponent, error)
	List(ctx context.Context) ([]*domain.PublicComponent, error)
	Search(ctx context.Context, filter domain.CatalogFilter) ([]*domain.PublicComponent, error)
	Update(ctx context.Context, id string, patch domain.PublicComponentPatch) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Vendors(ctx context.Context) ([]string, error)
}
