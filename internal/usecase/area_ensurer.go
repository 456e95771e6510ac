package usecase

import (
	"context"
	"time"

	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"go.uber.org/zap"
)

// A location is queued at most once per pendingAreaTTL.
const (
	pendingAreaKeyPrefix = "area-pending:"
	pendingAreaTTL       = 10 * time.Minute
)

// AreaEnsurer fills in missing location areas on read paths.
type AreaEnsurer struct {
	locations repository.LocationRepository
	resolver  *AreaResolver
	streams   repository.StreamRepository
	pending   repository.CacheRepository
	logger    *zap.Logger
}

// NewAreaEnsurer builds an ensurer. streams may be nil, in which case
// unresolved locations are left for the next read. pending may be nil, in
// which case every read queues its unresolved locations.
func NewAreaEnsurer(
	locations repository.LocationRepository,
	resolver *AreaResolver,
	streams repository.StreamRepository,
	pending repository.CacheRepository,
	logger *zap.Logger,
) *AreaEnsurer {
	return &AreaEnsurer{
		locations: locations,
		resolver:  resolver,
		streams:   streams,
		pending:   pending,
		logger:    logger,
	}
}

// Ensure resolves areas for the locations that have none, updating them in
// place and persisting what was found. Locations still without an area are
// queued for the background worker.
func (e *AreaEnsurer) Ensure(ctx context.Context, locs []*domain.Location) {
	var missing []*domain.Location
	for _, l := range locs {
		if l.Area == nil {
			missing = append(missing, l)
		}
	}
	if len(missing) == 0 {
		return
	}

	coords := make([]domain.Coordinate, len(missing))
	for i, l := range missing {
		coords[i] = l.Coordinate()
	}
	areas := e.resolver.ResolveBatch(ctx, coords)

	for _, l := range missing {
		area := areas[l.Coordinate().Key()]
		if area == nil {
			e.enqueue(ctx, l)
			continue
		}
		if err := e.locations.UpdateArea(ctx, l.ID, *area); err != nil {
			e.logger.Warn("Failed to persist location area",
				zap.String("location_id", l.ID.String()),
				zap.Error(err))
		}
		l.Area = area
	}
}

func (e *AreaEnsurer) enqueue(ctx context.Context, l *domain.Location) {
	if e.streams == nil || !e.resolver.geocoder.Configured() {
		return
	}
	if e.pending != nil {
		claimed, err := e.pending.Claim(ctx, pendingAreaKeyPrefix+l.ID.String(), pendingAreaTTL)
		if err != nil {
			e.logger.Debug("Failed to claim pending area key", zap.String("location_id", l.ID.String()), zap.Error(err))
		} else if !claimed {
			return
		}
	}
	event := domain.AreaResolveEvent{
		LocationID: l.ID,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
	}
	if err := e.streams.PublishToStream(ctx, domain.StreamLocationArea, event); err != nil {
		e.logger.Warn("Failed to queue area resolution",
			zap.String("location_id", l.ID.String()),
			zap.Error(err))
	}
}

// ensureOne is Ensure for a single location.
func (e *AreaEnsurer) ensureOne(ctx context.Context, l *domain.Location) {
	e.Ensure(ctx, []*domain.Location{l})
}
