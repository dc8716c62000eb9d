package routestore

import (
	"context"
	"time"

	"github.com/google/uuid"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
)

const (
	PEAK_MORNING = "matin"
	PEAK_EVENING = "soir"
)

// RouteRequest. the search as asked by the client, nil hour or weekday means "now"
type RouteRequest struct {
	StartPoint string `json:"start_point"`
	EndPoint   string `json:"end_point"`
	Hour       *int   `json:"hour,omitempty"`
	Weekday    *int   `json:"weekday,omitempty"`
}

// StoredRoute. a computed route kept for later retrieval
type StoredRoute struct {
	ID        string       `json:"id"`
	Request   RouteRequest `json:"request"`
	Hour      int          `json:"hour"`
	Weekday   int          `json:"weekday"`
	PeakLabel string       `json:"peak_label"`
	Route     *da.Route    `json:"route"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewStoredRoute(req RouteRequest, hour, weekday int, route *da.Route, now time.Time) StoredRoute {
	return StoredRoute{
		ID:        uuid.NewString(),
		Request:   req,
		Hour:      hour,
		Weekday:   weekday,
		PeakLabel: PeakLabel(hour),
		Route:     route,
		CreatedAt: now.UTC(),
	}
}

// PeakLabel. "matin" for departures between 05:00 and 10:59, "soir" otherwise
func PeakLabel(hour int) string {
	if 5 <= hour && hour <= 10 {
		return PEAK_MORNING
	}
	return PEAK_EVENING
}

type Repository interface {
	Save(ctx context.Context, r StoredRoute) error
	// Get. util.ErrNotFound coded error for unknown or expired ids
	Get(ctx context.Context, id string) (StoredRoute, error)
	// List. most recent first, at most limit routes (limit <= 0 means all)
	List(ctx context.Context, limit int) ([]StoredRoute, error)
	// Delete. util.ErrNotFound coded error for unknown or expired ids
	Delete(ctx context.Context, id string) error
	Close() error
}
