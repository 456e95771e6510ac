package area

import (
	"context"

	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/worker"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically queues locations that still have no area.
type Sweeper struct {
	*worker.BaseWorker
	streams   repository.StreamRepository
	locations repository.LocationRepository
	schedule  string
	limit     int
}

func NewSweeper(
	streams repository.StreamRepository,
	locations repository.LocationRepository,
	schedule string,
	limit int,
	logger *zap.Logger,
) *Sweeper {
	return &Sweeper{
		BaseWorker: worker.NewBaseWorker("area-sweeper", "", logger),
		streams:    streams,
		locations:  locations,
		schedule:   schedule,
		limit:      limit,
	}
}

// Start runs one sweep immediately and then on the cron schedule until
// stopped.
func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return err
	}

	s.Logger().Info("Starting area sweeper",
		zap.String("schedule", s.schedule),
		zap.Int("limit", s.limit))

	s.Sweep(ctx)
	c.Start()
	defer func() { <-c.Stop().Done() }()

	select {
	case <-s.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep publishes one area event per location missing an area and returns
// how many were queued.
func (s *Sweeper) Sweep(ctx context.Context) int {
	locs, err := s.locations.ListMissingArea(ctx, s.limit)
	if err != nil {
		s.Logger().Error("Failed to list locations missing area", zap.Error(err))
		return 0
	}

	queued := 0
	for _, l := range locs {
		event := domain.AreaResolveEvent{
			LocationID: l.ID,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
		}
		if err := s.streams.PublishToStream(ctx, domain.StreamLocationArea, event); err != nil {
			s.Logger().Error("Failed to queue location", zap.String("location_id", l.ID.String()), zap.Error(err))
			continue
		}
		queued++
	}

	if queued > 0 {
		s.Logger().Info("Queued locations missing area", zap.Int("count", queued))
	}
	return queued
}
