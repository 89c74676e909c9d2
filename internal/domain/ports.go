package domain

import "context"

type ActivityRepository interface {
	// Write paths
	UpsertActivity(ctx context.Context, a Activity) error
	DeleteActivity(ctx context.Context, id string) error
	LogMiss(ctx context.Context, id string, status int, reason string) error

	// Read paths
	GetActivity(ctx context.Context, id string) (Activity, error)
	ListActivities(ctx context.Context, q ActivitiesQuery) (ActivitiesPage, error)
}

// CatalogSource is the remote feed the ingestor reads activities from.
type CatalogSource interface {
	ListActivityIDs(ctx context.Context) ([]string, error)
	GetActivity(ctx context.Context, id string) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type ActivitiesQuery struct {
	Category *string
	Limit    int
}

type ActivitiesPage struct {
	Items []Activity
}
