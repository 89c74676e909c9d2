package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"dune_tours/internal/domain"
)

type ImportOutcome int

const (
	Imported ImportOutcome = iota
	Missed                 // 404/401/403 from the feed
	Invalid                // payload failed validation
)

type ImportReport struct {
	Listed   int `json:"listed"`
	Imported int `json:"imported"`
	Missed   int `json:"missed"`
	Invalid  int `json:"invalid"`
	Failed   int `json:"failed"`
}

// CommandService owns every write to the catalog: feed imports and admin edits.
type CommandService struct {
	source domain.CatalogSource
	repo   domain.ActivityRepository
	cache  domain.Cache
}

func NewCommandService(src domain.CatalogSource, r domain.ActivityRepository, cache domain.Cache) *CommandService {
	return &CommandService{source: src, repo: r, cache: cache}
}

// ImportActivity pulls one activity from the feed and upserts it. Known
// feed misses and invalid payloads are recorded and are not errors.
func (s *CommandService) ImportActivity(ctx context.Context, id string) (ImportOutcome, error) {
	if s.source == nil {
		return 0, errors.New("no catalog source configured")
	}
	p, err := s.source.GetActivity(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			_ = s.repo.LogMiss(ctx, id, 404, "not found")
		case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
			_ = s.repo.LogMiss(ctx, id, 403, "inactive")
		default:
			// network/5xx/JSON: bubble up
			return 0, err
		}
		// evict so we don't keep serving a stale snapshot
		s.invalidate(ctx, id)
		return Missed, nil
	}

	a := mapActivity(p).Normalize()
	if a.ID == "" {
		a.ID = id
	}
	if err := a.Validate(); err != nil {
		_ = s.repo.LogMiss(ctx, id, 422, truncate(err.Error(), 255))
		return Invalid, nil
	}
	if err := s.repo.UpsertActivity(ctx, a); err != nil {
		return 0, fmt.Errorf("upsert activity %s: %w", id, err)
	}
	s.invalidate(ctx, a.ID)
	return Imported, nil
}

// ImportAll lists the feed and imports every activity with at most workers
// concurrent fetches. Per-activity failures are counted, not returned.
func (s *CommandService) ImportAll(ctx context.Context, workers int) (ImportReport, error) {
	if s.source == nil {
		return ImportReport{}, errors.New("no catalog source configured")
	}
	if workers <= 0 {
		workers = 1
	}
	ids, err := s.source.ListActivityIDs(ctx)
	if err != nil {
		return ImportReport{}, fmt.Errorf("list feed: %w", err)
	}

	var (
		imported, missed, invalid, failed atomic.Int64
		wg                                sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(workers))

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer sem.Release(1)

			out, err := s.ImportActivity(ctx, id)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("id", id).Err(err).Msg("import failed")
				return
			}
			switch out {
			case Imported:
				imported.Add(1)
				log.Debug().Str("id", id).Msg("import ok")
			case Missed:
				missed.Add(1)
				log.Info().Str("id", id).Msg("import miss")
			case Invalid:
				invalid.Add(1)
				log.Info().Str("id", id).Msg("import rejected invalid payload")
			}
		}(id)
	}
	wg.Wait()

	return ImportReport{
		Listed:   len(ids),
		Imported: int(imported.Load()),
		Missed:   int(missed.Load()),
		Invalid:  int(invalid.Load()),
		Failed:   int(failed.Load()),
	}, ctx.Err()
}

// SaveActivity validates and upserts an admin-supplied activity.
func (s *CommandService) SaveActivity(ctx context.Context, a domain.Activity) error {
	a = a.Normalize()
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpsertActivity(ctx, a); err != nil {
		return err
	}
	s.invalidate(ctx, a.ID)
	return nil
}

func (s *CommandService) DeleteActivity(ctx context.Context, id string) error {
	if err := s.repo.DeleteActivity(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// invalidate drops the entity cache and every cached list.
func (s *CommandService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, activityKey(id))
	bumpCatalogVersion(ctx, s.cache)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
