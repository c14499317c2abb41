package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/frcparts/components-api/internal/api/metrics"
	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

const (
	categoriesKey = "catalog:categories"
	vendorsKey    = "catalog:vendors"
)

// CatalogService manages the shared public catalog.
type CatalogService struct {
	repo  ports.CatalogRepository
	cache ports.CatalogCache
	log   zerolog.Logger
}

var _ ports.CatalogService = (*CatalogService)(nil)

// NewCatalogService returns a CatalogService. cache may be nil, in which case
// distinct lists are always read from the repository.
func NewCatalogService(repo ports.CatalogRepository, cache ports.CatalogCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

func (s *CatalogService) Create(ctx context.Context, c *domain.PublicComponent) error {
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" || strings.TrimSpace(c.Name) == "" {
		return domain.ErrInvalidInput
	}
	if c.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrInvalidInput)
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("component_id", c.ID).Msg("public component created")
	return nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.PublicComponent, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.PublicComponent, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) Search(ctx context.Context, filter domain.CatalogFilter) ([]*domain.PublicComponent, error) {
	filter.Text = strings.TrimSpace(filter.Text)
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Vendor = strings.TrimSpace(filter.Vendor)
	if filter.MaxCost < 0 {
		return nil, fmt.Errorf("%w: max_cost must not be negative", domain.ErrInvalidInput)
	}
	return s.repo.Search(ctx, filter)
}

func (s *CatalogService) Update(ctx context.Context, id string, patch domain.PublicComponentPatch) error {
	if patch.Empty() {
		return domain.ErrNoFieldsToUpdate
	}
	if patch.Cost != nil && *patch.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrInvalidInput)
	}
	found, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	if !found {
		return domain.ErrComponentNotFound
	}
	s.invalidate(ctx)
	s.log.Info().Str("component_id", id).Msg("public component updated")
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	if !found {
		return domain.ErrComponentNotFound
	}
	s.invalidate(ctx)
	s.log.Info().Str("component_id", id).Msg("public component deleted")
	return nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, categoriesKey, s.repo.DistinctCategories)
}

func (s *CatalogService) Vendors(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, vendorsKey, s.repo.DistinctVendors)
}

// distinct serves a cached list when available. Cache errors fall through
// to the repository.
func (s *CatalogService) distinct(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if s.cache != nil {
		values, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		case ok:
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return values, nil
		default:
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	values, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if values == nil {
		values = []string{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, values); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}
	return values, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
