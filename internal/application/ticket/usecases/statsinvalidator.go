package usecases

import (
	"context"

	"tracker/internal/domain/shared/events"
)

// NewStatsInvalidator drops cached dashboard counts whenever activity is recorded.
func NewStatsInvalidator(cache StatsCache) events.EventHandler {
	return events.HandlerFunc(func(ctx context.Context, _ events.DomainEvent) error {
		return cache.Invalidate(ctx)
	})
}
