package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"dune_tours/internal/domain"
)

// valJSON marshals v, storing an empty object for nil maps so JSON NOT NULL
// columns always hold a document.
func valJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return "{}", nil
	}
	return string(b), nil
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertActivity(ctx context.Context, a domain.Activity) error {
	cols := make([]string, 0, 4)
	for _, v := range []any{a.Title, a.Description, a.Highlights, a.Prices} {
		s, err := valJSON(v)
		if err != nil {
			return fmt.Errorf("marshal activity %s: %w", a.ID, err)
		}
		cols = append(cols, s)
	}
	_, err := r.db.ExecContext(ctx, upsertActivitySQL,
		a.ID,
		a.Category,
		a.Duration,
		a.GroupSize,
		a.Image,
		cols[0], // title
		cols[1], // description
		cols[2], // highlights
		cols[3], // prices
		a.Position,
	)
	return err
}

func (r *Repo) DeleteActivity(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteActivitySQL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) LogMiss(ctx context.Context, id string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) GetActivity(ctx context.Context, id string) (domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, getActivitySQL, id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}
	return a, nil
}

func (r *Repo) ListActivities(ctx context.Context, q domain.ActivitiesQuery) (domain.ActivitiesPage, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if q.Category != nil && *q.Category != "" {
		rows, err = r.db.QueryContext(ctx, listActivitiesByCategorySQL, *q.Category, q.Limit)
	} else {
		rows, err = r.db.QueryContext(ctx, listActivitiesSQL, q.Limit)
	}
	if err != nil {
		return domain.ActivitiesPage{}, err
	}
	defer rows.Close()

	out := make([]domain.Activity, 0, q.Limit)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return domain.ActivitiesPage{}, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return domain.ActivitiesPage{}, err
	}
	return domain.ActivitiesPage{Items: out}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a                              domain.Activity
		title, desc, highlights, price []byte
		updatedAt                      sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.Category,
		&a.Duration,
		&a.GroupSize,
		&a.Image,
		&title, &desc, &highlights, &price,
		&a.Position,
		&updatedAt,
	); err != nil {
		return domain.Activity{}, err
	}
	if updatedAt.Valid {
		a.UpdatedAt = updatedAt.Time
	}

	// Bad JSON degrades to an empty field; rendering falls back from there.
	if err := json.Unmarshal(title, &a.Title); err != nil {
		log.Warn().Err(err).Str("id", a.ID).Msg("activity title is not valid JSON")
	}
	if err := json.Unmarshal(desc, &a.Description); err != nil {
		log.Warn().Err(err).Str("id", a.ID).Msg("activity description is not valid JSON")
	}
	if err := json.Unmarshal(highlights, &a.Highlights); err != nil {
		log.Warn().Err(err).Str("id", a.ID).Msg("activity highlights are not valid JSON")
	}
	if err := json.Unmarshal(price, &a.Prices); err != nil {
		log.Warn().Err(err).Str("id", a.ID).Msg("activity prices are not valid JSON")
	}
	return a, nil
}
