package area

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/metrics"
	"github.com/location-quest/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize   = 20
	idleSleep      = time.Second
	errorBackoff   = time.Second
	baseRetryDelay = 30 * time.Second
)

// Event results reported to metrics.AreaEventsProcessed.
const (
	resultResolved  = "resolved"
	resultRequeued  = "requeued"
	resultDropped   = "dropped"
	resultDeferred  = "deferred"
	resultSkipped   = "skipped"
	resultMalformed = "malformed"
	resultFailed    = "failed"
)

// Resolver looks up the area for a coordinate; nil means unknown.
type Resolver interface {
	Resolve(ctx context.Context, lat, lon float64) *string
}

// AreaWorker consumes area resolve events and stores the areas it finds.
type AreaWorker struct {
	*worker.BaseWorker
	streams      repository.StreamRepository
	locations    repository.LocationRepository
	resolver     Resolver
	consumerName string
	maxRetries   int
	now          func() time.Time
}

func NewAreaWorker(
	streams repository.StreamRepository,
	locations repository.LocationRepository,
	resolver Resolver,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *AreaWorker {
	hostname, _ := os.Hostname()

	return &AreaWorker{
		BaseWorker:   worker.NewBaseWorker("area-resolver", consumerGroup, logger),
		streams:      streams,
		locations:    locations,
		resolver:     resolver,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		now:          time.Now,
	}
}

func (w *AreaWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting area worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streams.CreateConsumerGroup(ctx, domain.StreamLocationArea, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.sleep(ctx, errorBackoff)
			continue
		}
		if processed == 0 {
			w.sleep(ctx, idleSleep)
		}
	}
}

// ProcessBatch handles one read from the stream and returns how many
// messages it handled; events that are not due yet do not count. Every
// consumed message is acknowledged, and events that still need work are
// published again as new messages.
func (w *AreaWorker) ProcessBatch(ctx context.Context) (int, error) {
	messages, err := w.streams.ConsumeBatch(ctx, domain.StreamLocationArea, w.ConsumerGroup(), w.consumerName, maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	handled := 0
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		result := w.handle(ctx, msg)
		metrics.AreaEventsProcessed.WithLabelValues(result).Inc()
		ids = append(ids, msg.ID)
		if result != resultDeferred {
			handled++
		}
	}

	if err := w.streams.AckMessages(ctx, domain.StreamLocationArea, w.ConsumerGroup(), ids); err != nil {
		w.Logger().Error("Failed to ack messages", zap.Error(err))
	}

	return handled, nil
}

func (w *AreaWorker) handle(ctx context.Context, msg domain.StreamMessage) string {
	logger := w.Logger()

	var event domain.AreaResolveEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Malformed area event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return resultMalformed
	}

	if event.NotBefore != nil && w.now().Before(*event.NotBefore) {
		if err := w.streams.PublishToStream(ctx, domain.StreamLocationArea, event); err != nil {
			logger.Error("Failed to defer area event", zap.Error(err))
			return resultFailed
		}
		return resultDeferred
	}

	loc, err := w.locations.GetByID(ctx, event.LocationID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return resultSkipped
	}
	if err != nil {
		logger.Error("Failed to load location", zap.String("location_id", event.LocationID.String()), zap.Error(err))
		return w.retry(ctx, event, resultFailed)
	}
	if loc.Area != nil {
		return resultSkipped
	}

	// Coordinates may have changed since the event was queued.
	area := w.resolver.Resolve(ctx, loc.Latitude, loc.Longitude)
	if area == nil {
		event.Latitude, event.Longitude = loc.Latitude, loc.Longitude
		return w.retry(ctx, event, resultRequeued)
	}

	if err := w.locations.UpdateArea(ctx, loc.ID, *area); err != nil {
		logger.Error("Failed to store area", zap.String("location_id", loc.ID.String()), zap.Error(err))
		return w.retry(ctx, event, resultFailed)
	}

	logger.Debug("Location area resolved",
		zap.String("location_id", loc.ID.String()),
		zap.String("area", *area))
	return resultResolved
}

// retry publishes the event again, due after a doubling delay, until it has
// been attempted maxRetries times; the periodic sweep picks up anything
// dropped here.
func (w *AreaWorker) retry(ctx context.Context, event domain.AreaResolveEvent, result string) string {
	event.Attempt++
	if event.Attempt >= w.maxRetries {
		w.Logger().Info("Giving up on location area",
			zap.String("location_id", event.LocationID.String()),
			zap.Int("attempts", event.Attempt))
		return resultDropped
	}
	due := w.now().Add(baseRetryDelay << (event.Attempt - 1))
	event.NotBefore = &due
	if err := w.streams.PublishToStream(ctx, domain.StreamLocationArea, event); err != nil {
		w.Logger().Error("Failed to requeue area event", zap.Error(err))
		return resultFailed
	}
	return result
}

func (w *AreaWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-w.StopChan():
	case <-ctx.Done():
	}
}
