package ports

import (
	"context"

	"github.com/frcparts/components-api/internal/core/domain"
)

// InventoryRepository persists team components. It performs no ownership
// checks; callers must run the access guard first.
type InventoryRepository interface {
	// Create assigns ID and LastUpdated.
	Create(ctx context.Context, c *domain.TeamComponent) error
	FindByID(ctx context.Context, id int64) (*domain.TeamComponent, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.TeamComponent, error)
	Update(ctx context.Context, id int64, patch domain.TeamComponentPatch) (bool, error)
	SetQuantity(ctx context.Context, id int64, quantity int) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CreateTeamComponentInput is the payload for a new inventory row.
type CreateTeamComponentInput struct {
	TeamID            string
	PublicComponentID *string
	Name              string
	Vendor            string
	Quantity          int
	Location          *string
	Notes             *string
	AddedBy           *string
	ImageURL          *string
	CADFileURL        *string
}

// InventoryService exposes team inventory operations. Every method takes
// the authenticated caller and checks team ownership before touching data.
type InventoryService interface {
	Create(ctx context.Context, caller *domain.User, in CreateTeamComponentInput) (*domain.TeamComponent, error)
	Get(ctx context.Context, caller *domain.User, id int64) (*domain.TeamComponent, error)
	ListByTeam(ctx context.Context, caller *domain.User, teamID string) ([]*domain.TeamComponent, error)
	Update(ctx context.Context, caller *domain.User, id int64, patch domain.TeamComponentPatch) error
	SetQuantity(ctx context.Context, caller *domain.User, id int64, quantity int) error
	Delete(ctx context.Context, caller *domain.User, id int64) error
	Summary(ctx context.Context, caller *domain.User, teamID string) (*domain.InventorySummary, error)
}
