package app

import (
	"context"
	"fmt"
	"time"

	"dune_tours/internal/domain"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100

	catalogVersionKey = "catalog:version"
)

func activityKey(id string) string { return "activity:" + id }

func listKey(version int64, q domain.ActivitiesQuery) string {
	cat := "*"
	if q.Category != nil && *q.Category != "" {
		cat = *q.Category
	}
	return fmt.Sprintf("activities:v%d:%s:%d", version, cat, q.Limit)
}

// NormalizeLimit clamps a requested page size into [1, MaxListLimit].
func NormalizeLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultListLimit
	case n > MaxListLimit:
		return MaxListLimit
	}
	return n
}

type CatalogService struct {
	repo     domain.ActivityRepository
	cache    domain.Cache
	cacheTTL time.Duration
	render   *Renderer
}

func NewCatalogService(r domain.ActivityRepository, c domain.Cache, ttl time.Duration, render *Renderer) *CatalogService {
	if render == nil {
		render = NewRenderer(nil)
	}
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl, render: render}
}

func (s *CatalogService) GetActivity(ctx context.Context, id string) (domain.Activity, error) {
	key := activityKey(id)
	var a domain.Activity
	if ok, _ := s.cache.Get(ctx, key, &a); ok {
		return a, nil
	}
	a, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return domain.Activity{}, err
	}
	_ = s.cache.Set(ctx, key, a, int(s.cacheTTL.Seconds()))
	return a, nil
}

func (s *CatalogService) ListActivities(ctx context.Context, q domain.ActivitiesQuery) (domain.ActivitiesPage, error) {
	q.Limit = NormalizeLimit(q.Limit)
	key := listKey(catalogVersion(ctx, s.cache), q)

	var out domain.ActivitiesPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	page, err := s.repo.ListActivities(ctx, q)
	if err != nil {
		return domain.ActivitiesPage{}, err
	}

	// copy slice to avoid aliasing the repo's backing array
	out = domain.ActivitiesPage{Items: make([]domain.Activity, len(page.Items))}
	copy(out.Items, page.Items)

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *CatalogService) GetCard(ctx context.Context, id string, p Prefs) (ActivityCard, error) {
	a, err := s.GetActivity(ctx, id)
	if err != nil {
		return ActivityCard{}, err
	}
	return s.render.RenderCard(a, p.Language, p.Currency), nil
}

func (s *CatalogService) ListCards(ctx context.Context, q domain.ActivitiesQuery, p Prefs) ([]ActivityCard, error) {
	page, err := s.ListActivities(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render.RenderCards(page.Items, p.Language, p.Currency), nil
}

// catalogVersion is folded into list keys; bumping it drops every cached list.
func catalogVersion(ctx context.Context, c domain.Cache) int64 {
	var v int64
	if ok, _ := c.Get(ctx, catalogVersionKey, &v); ok {
		return v
	}
	return 0
}

func bumpCatalogVersion(ctx context.Context, c domain.Cache) {
	// 0 TTL keeps the version until the next bump.
	_ = c.Set(ctx, catalogVersionKey, time.Now().UnixNano(), 0)
}
