package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/frcparts/components-api/internal/api/metrics"
	"github.com/frcparts/components-api/internal/core/auth"
	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// ActivityService persists and lists the inventory activity log.
type ActivityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

var _ ports.ActivityService = (*ActivityService)(nil)

func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Record persists a single inventory event. It is called from the activity
// dispatcher workers, never from a request goroutine.
func (s *ActivityService) Record(ctx context.Context, event domain.InventoryEvent) error {
	if event.TeamID == "" {
		return fmt.Errorf("record activity: %w: missing team", domain.ErrInvalidInput)
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("team_id", event.TeamID).
		Int64("component_id", event.ComponentID).
		Str("action", string(event.Action)).
		Msg("activity recorded")
	return nil
}

// List returns the newest events of the caller's team. limit falls back to
// DefaultActivityLimit when not positive and is capped at MaxActivityLimit.
func (s *ActivityService) List(ctx context.Context, caller *domain.User, teamID string, limit int) ([]*domain.InventoryEvent, error) {
	if err := auth.CheckTeamAccess(caller, teamID); err != nil {
		metrics.AccessDeniedTotal.WithLabelValues("activity").Inc()
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	return s.repo.ListByTeam(ctx, teamID, limit)
}
