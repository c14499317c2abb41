package ports

import (
	"context"

	"github.com/frcparts/components-api/internal/core/domain"
)

// ActivityRepository stores the inventory activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.InventoryEvent) error
	// ListByTeam returns the newest events first.
	ListByTeam(ctx context.Context, teamID string, limit int) ([]*domain.InventoryEvent, error)
}

// ActivityRecorder accepts events for asynchronous persistence.
type ActivityRecorder interface {
	Enqueue(event domain.InventoryEvent)
}

// ActivityService persists and lists inventory events.
type ActivityService interface {
	Record(ctx context.Context, event domain.InventoryEvent) error
	List(ctx context.Context, caller *domain.User, teamID string, limit int) ([]*domain.InventoryEvent, error)
}
