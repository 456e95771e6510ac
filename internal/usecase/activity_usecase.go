package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/metrics"
	"github.com/location-quest/internal/pkg/errors"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

const defaultActivityPageSize = 20

var (
	errActivityNotFound    = errors.NotFound("Activity not found")
	errActivityEnded       = errors.InvalidRequest("Activity has already ended")
	errUserNotFound        = errors.NotFound("User not found")
	errNFCLocationNotFound = errors.NotFound("Location with this NFC ID not found")
	errNFCDisabled         = errors.InvalidRequest("NFC is not enabled for this location")
	errActivityNotOwned    = errors.Unauthorized("Activity does not belong to this user")
)

type ActivityUseCase struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	locations  repository.LocationRepository
	areas      *AreaEnsurer
	evaluator  *BadgeEvaluator
	logger     *zap.Logger
}

func NewActivityUseCase(
	users repository.UserRepository,
	activities repository.ActivityRepository,
	locations repository.LocationRepository,
	areas *AreaEnsurer,
	evaluator *BadgeEvaluator,
	logger *zap.Logger,
) *ActivityUseCase {
	return &ActivityUseCase{
		users:      users,
		activities: activities,
		locations:  locations,
		areas:      areas,
		evaluator:  evaluator,
		logger:     logger,
	}
}

func (uc *ActivityUseCase) Start(ctx context.Context, userID uuid.UUID, req dto.StartActivityRequest) (*dto.StartActivityResponse, error) {
	startTime, err := parseTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	if err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}

	activity := &domain.Activity{UserID: userID, StartTime: startTime}
	first := domain.TrackPoint{
		Latitude:  *req.StartLocation.Latitude,
		Longitude: *req.StartLocation.Longitude,
		Timestamp: startTime,
	}
	if err := uc.activities.Create(ctx, activity, first); err != nil {
		return nil, fmt.Errorf("start activity: %w", err)
	}

	uc.logger.Info("Activity started",
		zap.String("activity_id", activity.ID.String()),
		zap.String("user_id", userID.String()))

	return &dto.StartActivityResponse{
		ActivityID: activity.ID,
		StartTime:  activity.StartTime,
		Status:     string(domain.ActivityInProgress),
	}, nil
}

func (uc *ActivityUseCase) Track(ctx context.Context, userID, activityID uuid.UUID, req dto.TrackActivityRequest) (*dto.TrackActivityResponse, error) {
	points := make([]domain.TrackPoint, 0, len(req.Points))
	for _, p := range req.Points {
		ts, err := parseTime(p.Timestamp)
		if err != nil {
			return nil, err
		}
		points = append(points, domain.TrackPoint{
			Latitude:  *p.Latitude,
			Longitude: *p.Longitude,
			Timestamp: ts,
			Accuracy:  p.Accuracy,
		})
	}

	if _, err := uc.ownedInProgress(ctx, userID, activityID); err != nil {
		return nil, err
	}

	if err := uc.activities.AddTrackPoints(ctx, activityID, points); err != nil {
		return nil, fmt.Errorf("add track points: %w", err)
	}
	total, err := uc.activities.CountTrackPoints(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return &dto.TrackActivityResponse{PointsAdded: len(points), TotalPoints: total}, nil
}

func (uc *ActivityUseCase) End(ctx context.Context, userID, activityID uuid.UUID, req dto.EndActivityRequest) (*dto.EndActivityResponse, error) {
	endTime, err := parseTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	activity, err := uc.ownedInProgress(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	stored, err := uc.activities.ListTrackPoints(ctx, activityID)
	if err != nil {
		return nil, err
	}
	endPoint := domain.TrackPoint{
		ActivityID: activityID,
		Latitude:   *req.EndLocation.Latitude,
		Longitude:  *req.EndLocation.Longitude,
		Timestamp:  endTime,
	}
	route := append(stored, endPoint)
	sort.SliceStable(route, func(i, j int) bool {
		return route[i].Timestamp.Before(route[j].Timestamp)
	})

	routeCoords := make([]domain.Coordinate, len(route))
	for i := range route {
		routeCoords[i] = route[i].Coordinate()
	}

	distance, err := uc.distance(ctx, activityID, routeCoords)
	if err != nil {
		return nil, err
	}
	duration := int64(math.Floor(endTime.Sub(activity.StartTime).Seconds()))
	averageSpeed := 0.0
	if duration > 0 {
		averageSpeed = distance / float64(duration) * 3600
	}

	existing, err := uc.activities.ListCollected(ctx, activityID)
	if err != nil {
		return nil, err
	}
	already := make(map[uuid.UUID]struct{}, len(existing))
	for _, c := range existing {
		already[c.LocationID] = struct{}{}
	}

	swept, err := uc.sweep(ctx, activity.StartTime, route, routeCoords, already)
	if err != nil {
		return nil, err
	}

	ended, err := uc.activities.Complete(ctx, domain.ActivityCompletion{
		ActivityID:   activityID,
		UserID:       userID,
		EndTime:      endTime,
		EndPoint:     endPoint,
		Distance:     distance,
		Duration:     duration,
		AverageSpeed: averageSpeed,
		Collected:    swept,
	})
	if stderrors.Is(err, repository.ErrActivityAlreadyEnded) {
		return nil, errActivityEnded
	}
	if err != nil {
		return nil, fmt.Errorf("complete activity: %w", err)
	}
	metrics.ActivitiesEnded.Inc()
	metrics.LocationsCollected.WithLabelValues("route").Add(float64(len(swept)))

	collected, err := uc.activities.ListCollected(ctx, activityID)
	if err != nil {
		return nil, err
	}
	uc.ensureCollectedAreas(ctx, collected)

	newBadges, err := uc.evaluator.Evaluate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("evaluate badges: %w", err)
	}

	resp := &dto.EndActivityResponse{
		ActivityID:         activityID,
		StartTime:          activity.StartTime,
		EndTime:            endTime,
		Distance:           distance,
		Duration:           duration,
		AverageSpeed:       averageSpeed,
		Route:              routeResponse(route),
		CollectedLocations: make([]dto.CollectedLocation, 0, len(collected)),
		TotalCoinsEarned:   ended.TotalCoins,
		NewBadges:          newBadgesResponse(newBadges),
	}
	for _, c := range collected {
		coins := c.CoinsEarned
		resp.CollectedLocations = append(resp.CollectedLocations, dto.CollectedLocation{
			ID:          c.Location.ID,
			Name:        c.Location.Name,
			Latitude:    c.Location.Latitude,
			Longitude:   c.Location.Longitude,
			Area:        c.Location.Area,
			CoinsEarned: &coins,
		})
	}

	uc.logger.Info("Activity ended",
		zap.String("activity_id", activityID.String()),
		zap.Float64("distance_km", distance),
		zap.Int64("duration_s", duration),
		zap.Int("collected", len(collected)),
		zap.Int("new_badges", len(newBadges)))

	return resp, nil
}

// distance prefers the GPS route and falls back to the path between
// NFC-collected locations.
func (uc *ActivityUseCase) distance(ctx context.Context, activityID uuid.UUID, route []domain.Coordinate) (float64, error) {
	if len(route) >= 2 {
		return utils.PathDistance(route), nil
	}

	nfc, err := uc.activities.ListCollectedNFC(ctx, activityID)
	if err != nil {
		return 0, err
	}
	if len(nfc) < 2 {
		return 0, nil
	}
	coords := make([]domain.Coordinate, len(nfc))
	for i := range nfc {
		coords[i] = nfc[i].Location.Coordinate()
	}
	return utils.PathDistance(coords), nil
}

// sweep collects every walk-past location within the proximity threshold
// of the route that the activity does not hold yet, timestamped at the
// closest route point.
func (uc *ActivityUseCase) sweep(
	ctx context.Context,
	startTime time.Time,
	route []domain.TrackPoint,
	routeCoords []domain.Coordinate,
	already map[uuid.UUID]struct{},
) ([]domain.ActivityCollectedLocation, error) {
	candidates, err := uc.locations.ListRouteCollectable(ctx)
	if err != nil {
		return nil, err
	}

	var collected []domain.ActivityCollectedLocation
	for _, loc := range candidates {
		if loc.IsNFCEnabled {
			continue
		}
		if _, ok := already[loc.ID]; ok {
			continue
		}
		target := loc.Coordinate()
		if !utils.IsNear(target, routeCoords, utils.ProximityThresholdKm) {
			continue
		}

		at := startTime
		if idx, _ := utils.ClosestPoint(target, routeCoords); idx >= 0 {
			at = route[idx].Timestamp
		}
		collected = append(collected, domain.ActivityCollectedLocation{
			LocationID:  loc.ID,
			CollectedAt: at,
			CoinsEarned: domain.CoinsPerLocation,
			Location:    loc,
		})
	}
	return collected, nil
}

func (uc *ActivityUseCase) CollectNFC(ctx context.Context, userID, activityID uuid.UUID, req dto.CollectNFCRequest) (*dto.CollectNFCResponse, error) {
	activity, err := uc.activities.GetByID(ctx, activityID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	if !activity.IsOwnedBy(userID) {
		return nil, errActivityNotOwned
	}

	location, err := uc.locations.GetByNFCID(ctx, req.NFCID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errNFCLocationNotFound
	}
	if err != nil {
		return nil, err
	}
	if !location.IsNFCEnabled {
		return nil, errNFCDisabled
	}

	result, err := uc.activities.CollectNFC(ctx, activityID, userID, location.ID)
	if err != nil {
		return nil, fmt.Errorf("collect nfc location: %w", err)
	}
	if result.AddedToActivity {
		metrics.LocationsCollected.WithLabelValues("nfc").Inc()
	}

	uc.areas.ensureOne(ctx, location)

	newBadges := []domain.UnlockedBadge{}
	if result.IsFirstCollection {
		if newBadges, err = uc.evaluator.Evaluate(ctx, userID); err != nil {
			return nil, fmt.Errorf("evaluate badges: %w", err)
		}
	}

	totalCoins, err := uc.activities.SumCoinsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Location collected by NFC",
		zap.String("activity_id", activityID.String()),
		zap.String("location_id", location.ID.String()),
		zap.Bool("first_collection", result.IsFirstCollection))

	return &dto.CollectNFCResponse{
		LocationID:        location.ID,
		Name:              location.Name,
		Area:              location.Area,
		CoinsEarned:       domain.CoinsPerLocation,
		TotalCoins:        totalCoins,
		IsFirstCollection: result.IsFirstCollection,
		NewBadges:         newBadgesResponse(newBadges),
	}, nil
}

func (uc *ActivityUseCase) List(ctx context.Context, userID uuid.UUID, q dto.ListActivitiesQuery) (*dto.ActivityListResponse, error) {
	q.Normalize(defaultActivityPageSize)

	var filter domain.ActivityFilter
	if q.StartDate != "" {
		t, err := parseTime(q.StartDate)
		if err != nil {
			return nil, err
		}
		filter.EndFrom = &t
	}
	if q.EndDate != "" {
		t, err := parseTime(q.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndTo = &t
	}

	if err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}

	items, total, err := uc.activities.List(ctx, userID, filter, domain.Page{Number: q.Page, Limit: q.Limit})
	if err != nil {
		return nil, err
	}

	resp := &dto.ActivityListResponse{
		Activities: make([]dto.ActivityListItem, 0, len(items)),
		Pagination: dto.Pagination{
			CurrentPage:  q.Page,
			TotalPages:   utils.TotalPages(total, q.Limit),
			TotalRecords: total,
			Limit:        q.Limit,
		},
	}
	for _, a := range items {
		resp.Activities = append(resp.Activities, dto.ActivityListItem{
			ActivityID:              a.ID,
			Date:                    a.StartTime,
			Distance:                derefFloat(a.Distance),
			Duration:                derefInt64(a.Duration),
			AverageSpeed:            derefFloat(a.AverageSpeed),
			CoinsEarned:             a.TotalCoins,
			CollectedLocationsCount: a.CollectedCount,
		})
	}
	return resp, nil
}

func (uc *ActivityUseCase) Detail(ctx context.Context, userID, activityID uuid.UUID) (*dto.ActivityDetailResponse, error) {
	activity, err := uc.owned(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	points, err := uc.activities.ListTrackPoints(ctx, activityID)
	if err != nil {
		return nil, err
	}
	collected, err := uc.activities.ListCollected(ctx, activityID)
	if err != nil {
		return nil, err
	}
	uc.ensureCollectedAreas(ctx, collected)

	resp := &dto.ActivityDetailResponse{
		ActivityID:         activity.ID,
		StartTime:          activity.StartTime,
		EndTime:            activity.EndTime,
		Distance:           derefFloat(activity.Distance),
		Duration:           derefInt64(activity.Duration),
		AverageSpeed:       derefFloat(activity.AverageSpeed),
		Route:              routeResponse(points),
		CollectedLocations: make([]dto.CollectedLocation, 0, len(collected)),
	}
	for _, c := range collected {
		at := c.CollectedAt
		resp.CoinsEarned += c.CoinsEarned
		resp.CollectedLocations = append(resp.CollectedLocations, dto.CollectedLocation{
			ID:          c.Location.ID,
			Name:        c.Location.Name,
			Latitude:    c.Location.Latitude,
			Longitude:   c.Location.Longitude,
			Area:        c.Location.Area,
			CollectedAt: &at,
		})
	}
	return resp, nil
}

// owned loads an activity and hides activities of other users behind 404.
func (uc *ActivityUseCase) owned(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	activity, err := uc.activities.GetByID(ctx, activityID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	if !activity.IsOwnedBy(userID) {
		return nil, errActivityNotFound
	}
	return activity, nil
}

func (uc *ActivityUseCase) ownedInProgress(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	activity, err := uc.owned(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Status() == domain.ActivityEnded {
		return nil, errActivityEnded
	}
	return activity, nil
}

func (uc *ActivityUseCase) ensureCollectedAreas(ctx context.Context, collected []domain.ActivityCollectedLocation) {
	locs := make([]*domain.Location, len(collected))
	for i := range collected {
		locs[i] = &collected[i].Location
	}
	uc.areas.Ensure(ctx, locs)
}

func routeResponse(points []domain.TrackPoint) []dto.RoutePoint {
	route := make([]dto.RoutePoint, len(points))
	for i, p := range points {
		route[i] = dto.RoutePoint{Latitude: p.Latitude, Longitude: p.Longitude, Timestamp: p.Timestamp}
	}
	return route
}

func newBadgesResponse(badges []domain.UnlockedBadge) []dto.NewBadge {
	out := make([]dto.NewBadge, len(badges))
	for i, b := range badges {
		out[i] = dto.NewBadge{BadgeID: b.BadgeID, Name: b.Name, ImageURL: b.ImageURL, UnlockedAt: b.UnlockedAt}
	}
	return out
}

// parseTime parses an RFC 3339 timestamp; validation has already checked
// the format, so a failure here is still reported as a bad request.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.InvalidRequest("Invalid datetime format")
	}
	return t.UTC(), nil
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
