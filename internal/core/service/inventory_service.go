package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/frcparts/components-api/internal/api/metrics"
	"github.com/frcparts/components-api/internal/core/auth"
	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

type InventoryService struct {
	repo     ports.InventoryRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewInventoryService returns an InventoryService. activity may be nil when
// no activity log is configured.
func NewInventoryService(repo ports.InventoryRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *InventoryService {
	return &InventoryService{
		repo:     repo,
		activity: activity,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a row to the caller's own inventory. The payload team must be
// the caller's team.
func (s *InventoryService) Create(ctx context.Context, caller *domain.User, in ports.CreateTeamComponentInput) (*domain.TeamComponent, error) {
	if err := s.guard(caller, in.TeamID, "team_component"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Vendor) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	component := &domain.TeamComponent{
		TeamID:            in.TeamID,
		PublicComponentID: in.PublicComponentID,
		Name:              in.Name,
		Vendor:            in.Vendor,
		Quantity:          in.Quantity,
		Location:          in.Location,
		Notes:             in.Notes,
		AddedBy:           in.AddedBy,
		ImageURL:          in.ImageURL,
		CADFileURL:        in.CADFileURL,
	}
	if err := s.repo.Create(ctx, component); err != nil {
		s.logger.Error().Err(err).Str("team_id", in.TeamID).Msg("failed to create team component")
		return nil, err
	}

	s.logger.Info().Int64("component_id", component.ID).Str("team_id", component.TeamID).Msg("team component created")
	s.record(caller, component.TeamID, component.ID, domain.ActionCreated, &component.Quantity)
	return component, nil
}

// Get returns a single row. A missing row is reported before ownership is
// checked.
func (s *InventoryService) Get(ctx context.Context, caller *domain.User, id int64) (*domain.TeamComponent, error) {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard(caller, component.TeamID, "team_component"); err != nil {
		return nil, err
	}
	return component, nil
}

func (s *InventoryService) ListByTeam(ctx context.Context, caller *domain.User, teamID string) ([]*domain.TeamComponent, error) {
	if err := s.guard(caller, teamID, "team_components"); err != nil {
		return nil, err
	}
	return s.repo.ListByTeam(ctx, teamID)
}

func (s *InventoryService) Update(ctx context.Context, caller *domain.User, id int64, patch domain.TeamComponentPatch) error {
	component, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}
	if patch.Empty() {
		return domain.ErrNoFieldsToUpdate
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	found, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update team component: %w", err)
	}
	if !found {
		return domain.ErrComponentNotFound
	}

	s.logger.Info().Int64("component_id", id).Str("team_id", component.TeamID).Msg("team component updated")
	s.record(caller, component.TeamID, id, domain.ActionUpdated, patch.Quantity)
	return nil
}

func (s *InventoryService) SetQuantity(ctx context.Context, caller *domain.User, id int64, quantity int) error {
	component, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	found, err := s.repo.SetQuantity(ctx, id, quantity)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	if !found {
		return domain.ErrComponentNotFound
	}

	s.logger.Info().Int64("component_id", id).Int("quantity", quantity).Msg("team component quantity changed")
	s.record(caller, component.TeamID, id, domain.ActionQuantityChanged, &quantity)
	return nil
}

func (s *InventoryService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	component, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete team component: %w", err)
	}
	if !found {
		return domain.ErrComponentNotFound
	}

	s.logger.Info().Int64("component_id", id).Str("team_id", component.TeamID).Msg("team component deleted")
	s.record(caller, component.TeamID, id, domain.ActionDeleted, nil)
	return nil
}

// Summary totals the quantities of a team's inventory.
func (s *InventoryService) Summary(ctx context.Context, caller *domain.User, teamID string) (*domain.InventorySummary, error) {
	components, err := s.ListByTeam(ctx, caller, teamID)
	if err != nil {
		return nil, err
	}

	summary := &domain.InventorySummary{TeamID: teamID, UniqueComponents: len(components)}
	for _, c := range components {
		summary.TotalItems += c.Quantity
	}
	return summary, nil
}

func (s *InventoryService) guard(caller *domain.User, teamID, resource string) error {
	if err := auth.CheckTeamAccess(caller, teamID); err != nil {
		metrics.AccessDeniedTotal.WithLabelValues(resource).Inc()
		var username string
		if caller != nil {
			username = caller.Username
		}
		s.logger.Warn().Str("username", username).Str("team_id", teamID).Str("resource", resource).Msg("team access denied")
		return err
	}
	return nil
}

func (s *InventoryService) record(caller *domain.User, teamID string, componentID int64, action domain.InventoryAction, quantity *int) {
	metrics.InventoryMutationsTotal.WithLabelValues(string(action)).Inc()
	if s.activity == nil {
		return
	}
	var q *int
	if quantity != nil {
		v := *quantity
		q = &v
	}
	s.activity.Enqueue(domain.InventoryEvent{
		TeamID:      teamID,
		ComponentID: componentID,
		Action:      action,
		Actor:       caller.Username,
		Quantity:    q,
		Timestamp:   s.now(),
	})
}
