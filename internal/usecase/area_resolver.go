package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/location-quest/internal/config"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/metrics"
	"github.com/location-quest/internal/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AreaResolver turns coordinates into area labels. Failures never surface
// to callers: an unresolvable coordinate simply has no area.
type AreaResolver struct {
	geocoder repository.GeocodingRepository
	cache    repository.CacheRepository
	cfg      config.GeocodingConfig
	cacheTTL time.Duration
	limited  *logger.Limited
	logger   *zap.Logger
}

// NewAreaResolver builds a resolver. cache may be nil.
func NewAreaResolver(
	geocoder repository.GeocodingRepository,
	cache repository.CacheRepository,
	cfg config.GeocodingConfig,
	cacheTTL time.Duration,
	log *zap.Logger,
) *AreaResolver {
	return &AreaResolver{
		geocoder: geocoder,
		cache:    cache,
		cfg:      cfg,
		cacheTTL: cacheTTL,
		limited:  logger.NewLimited(log, cfg.MaxErrorLogs),
		logger:   log,
	}
}

// Resolve returns the area for a single coordinate, or nil.
func (r *AreaResolver) Resolve(ctx context.Context, lat, lon float64) *string {
	if !r.geocoder.Configured() {
		r.limited.WarnOnce("missing_api_key", "Geocoding API key not configured, areas will not be resolved")
		metrics.GeocodeRequests.WithLabelValues(metrics.GeocodeNoAPIKey).Inc()
		return nil
	}

	coord := domain.Coordinate{Lat: lat, Lon: lon}
	key := coord.RoundedKey()

	if area, ok := r.cached(ctx, key); ok {
		metrics.GeocodeRequests.WithLabelValues(metrics.GeocodeCached).Inc()
		return &area
	}

	area, err := r.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		r.handleError(err, coord)
		return nil
	}

	metrics.GeocodeRequests.WithLabelValues(metrics.GeocodeResolved).Inc()
	if r.cache != nil {
		if err := r.cache.SetArea(ctx, key, area, r.cacheTTL); err != nil {
			r.logger.Debug("Failed to cache area", zap.String("key", key), zap.Error(err))
		}
	}
	return &area
}

func (r *AreaResolver) cached(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	area, found, err := r.cache.GetArea(ctx, key)
	if err != nil {
		r.logger.Debug("Area cache lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return area, found
}

func (r *AreaResolver) handleError(err error, coord domain.Coordinate) {
	fields := []zap.Field{
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon),
		zap.Error(err),
	}

	var geoErr *domain.GeocodeError
	switch {
	case errors.Is(err, domain.ErrNoGeocodeResult):
		metrics.GeocodeRequests.WithLabelValues(metrics.GeocodeNoResult).Inc()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.GeocodeRequests.WithLabelValues(metrics.GeocodeFailed).Inc()
	case errors.As(err, &geoErr):
		metrics.GeocodeRequests.WithLabelValues(metrics.GeocodeFailed).Inc()
		r.limited.Error(geoErr.Category, "Reverse geocoding failed", fields...)
	default:
		metrics.GeocodeRequests.WithLabelValues(metrics.GeocodeFailed).Inc()
		r.limited.Error("UNKNOWN", "Reverse geocoding failed", fields...)
	}
}

// ResolveBatch resolves many coordinates. Coordinates equal to six decimal
// places share one lookup. Lookups run concurrently in passes of BatchSize
// with BatchDelay between passes. The result is keyed by Coordinate.Key of
// every input.
func (r *AreaResolver) ResolveBatch(ctx context.Context, coords []domain.Coordinate) map[string]*string {
	result := make(map[string]*string, len(coords))
	if len(coords) == 0 {
		return result
	}

	if !r.geocoder.Configured() {
		r.limited.WarnOnce("missing_api_key", "Geocoding API key not configured, areas will not be resolved")
		for _, c := range coords {
			result[c.Key()] = nil
		}
		return result
	}

	var unique []domain.Coordinate
	seen := make(map[string]int)
	for _, c := range coords {
		if _, ok := seen[c.RoundedKey()]; !ok {
			seen[c.RoundedKey()] = len(unique)
			unique = append(unique, c)
		}
	}

	areas := make([]*string, len(unique))
	batchSize := r.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(unique)
	}

	for start := 0; start < len(unique); start += batchSize {
		if start > 0 && r.cfg.BatchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.cfg.BatchDelay):
			}
		}
		if ctx.Err() != nil {
			break
		}

		end := start + batchSize
		if end > len(unique) {
			end = len(unique)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchSize)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				areas[i] = r.Resolve(gctx, unique[i].Lat, unique[i].Lon)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			r.logger.Debug("Area batch interrupted", zap.Int("resolved_up_to", start), zap.Error(err))
			break
		}
	}

	for _, c := range coords {
		result[c.Key()] = areas[seen[c.RoundedKey()]]
	}
	return result
}
