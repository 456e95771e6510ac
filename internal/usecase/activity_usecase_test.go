package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	apperrors "github.com/location-quest/internal/pkg/errors"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.StatusCode)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

type ActivityUseCaseTestSuite struct {
	suite.Suite
	ctx         context.Context
	users       *MockUserRepository
	activities  *MockActivityRepository
	locations   *MockLocationRepository
	collections *MockCollectionRepository
	badges      *MockBadgeRepository
	userBadges  *MockUserBadgeRepository
	geocoder    *MockGeocodingRepository
	uc          *usecase.ActivityUseCase

	userID     uuid.UUID
	activityID uuid.UUID
	start      time.Time
}

func (s *ActivityUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = new(MockUserRepository)
	s.activities = new(MockActivityRepository)
	s.locations = new(MockLocationRepository)
	s.collections = new(MockCollectionRepository)
	s.badges = new(MockBadgeRepository)
	s.userBadges = new(MockUserBadgeRepository)
	s.geocoder = new(MockGeocodingRepository)
	s.geocoder.On("Configured").Return(false).Maybe()

	logger := zap.NewNop()
	resolver := usecase.NewAreaResolver(s.geocoder, nil, testGeocodingConfig(), areaTTL, logger)
	ensurer := usecase.NewAreaEnsurer(s.locations, resolver, nil, nil, logger)
	evaluator := usecase.NewBadgeEvaluator(s.badges, s.userBadges, s.collections, logger)
	s.uc = usecase.NewActivityUseCase(s.users, s.activities, s.locations, ensurer, evaluator, logger)

	s.userID = uuid.New()
	s.activityID = uuid.New()
	s.start = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
}

func TestActivityUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityUseCaseTestSuite))
}

func (s *ActivityUseCaseTestSuite) inProgress() *domain.Activity {
	return &domain.Activity{ID: s.activityID, UserID: s.userID, StartTime: s.start}
}

func (s *ActivityUseCaseTestSuite) expectNoBadges() {
	s.badges.On("List", s.ctx, "", (*domain.Page)(nil)).Return([]domain.Badge{}, nil)
	s.collections.On("ListByUser", s.ctx, s.userID).Return([]domain.UserLocationCollection{}, nil)
	s.userBadges.On("ListByUser", s.ctx, s.userID).Return([]domain.UserBadge{}, nil)
	s.userBadges.On("SaveBatch", s.ctx, mock.Anything).Return(nil)
}

func (s *ActivityUseCaseTestSuite) TestStart_UserNotFound() {
	s.users.On("Exists", s.ctx, s.userID).Return(false, nil)

	_, err := s.uc.Start(s.ctx, s.userID, dto.StartActivityRequest{
		StartTime:     "2025-05-01T08:00:00Z",
		StartLocation: dto.Coordinates{Latitude: floatPtr(25), Longitude: floatPtr(121)},
	})

	requireAppError(s.T(), err, http.StatusNotFound, "User not found")
	s.activities.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ActivityUseCaseTestSuite) TestStart_CreatesActivityWithFirstPoint() {
	s.users.On("Exists", s.ctx, s.userID).Return(true, nil)
	s.activities.On("Create", s.ctx, mock.AnythingOfType("*domain.Activity"), mock.MatchedBy(func(p domain.TrackPoint) bool {
		return p.Latitude == 25 && p.Longitude == 121 && p.Timestamp.Equal(s.start) && p.Accuracy == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Activity).ID = s.activityID
	}).Return(nil)

	resp, err := s.uc.Start(s.ctx, s.userID, dto.StartActivityRequest{
		StartTime:     "2025-05-01T08:00:00.000Z",
		StartLocation: dto.Coordinates{Latitude: floatPtr(25), Longitude: floatPtr(121)},
	})

	s.Require().NoError(err)
	s.Equal(s.activityID, resp.ActivityID)
	s.Equal("in_progress", resp.Status)
	s.True(resp.StartTime.Equal(s.start))
}

func (s *ActivityUseCaseTestSuite) TestTrack_OtherUsersActivityIsNotFound() {
	other := s.inProgress()
	other.UserID = uuid.New()
	s.activities.On("GetByID", s.ctx, s.activityID).Return(other, nil)

	_, err := s.uc.Track(s.ctx, s.userID, s.activityID, dto.TrackActivityRequest{
		Points: []dto.TrackPointRequest{{Latitude: floatPtr(25), Longitude: floatPtr(121), Timestamp: "2025-05-01T08:01:00Z"}},
	})

	requireAppError(s.T(), err, http.StatusNotFound, "Activity not found")
}

func (s *ActivityUseCaseTestSuite) TestTrack_EndedActivity() {
	ended := s.inProgress()
	end := s.start.Add(time.Hour)
	ended.EndTime = &end
	s.activities.On("GetByID", s.ctx, s.activityID).Return(ended, nil)

	_, err := s.uc.Track(s.ctx, s.userID, s.activityID, dto.TrackActivityRequest{
		Points: []dto.TrackPointRequest{{Latitude: floatPtr(25), Longitude: floatPtr(121), Timestamp: "2025-05-01T08:01:00Z"}},
	})

	requireAppError(s.T(), err, http.StatusBadRequest, "Activity has already ended")
}

func (s *ActivityUseCaseTestSuite) TestTrack_AppendsPoints() {
	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.activities.On("AddTrackPoints", s.ctx, s.activityID, mock.MatchedBy(func(ps []domain.TrackPoint) bool {
		return len(ps) == 2 && ps[1].Accuracy != nil && *ps[1].Accuracy == 5
	})).Return(nil)
	s.activities.On("CountTrackPoints", s.ctx, s.activityID).Return(3, nil)

	resp, err := s.uc.Track(s.ctx, s.userID, s.activityID, dto.TrackActivityRequest{
		Points: []dto.TrackPointRequest{
			{Latitude: floatPtr(25), Longitude: floatPtr(121), Timestamp: "2025-05-01T08:01:00Z"},
			{Latitude: floatPtr(25.0001), Longitude: floatPtr(121), Timestamp: "2025-05-01T08:02:00Z", Accuracy: floatPtr(5)},
		},
	})

	s.Require().NoError(err)
	s.Equal(2, resp.PointsAdded)
	s.Equal(3, resp.TotalPoints)
}

func (s *ActivityUseCaseTestSuite) TestEnd_SweepsRouteAndComputesMetrics() {
	endTime := s.start.Add(10 * time.Minute)
	area := "台北市大安區"
	near := domain.Location{ID: uuid.New(), Name: "near", Latitude: 25.001, Longitude: 121.0002, Area: &area}
	far := domain.Location{ID: uuid.New(), Name: "far", Latitude: 24.0, Longitude: 120.0, Area: &area}

	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.activities.On("ListTrackPoints", s.ctx, s.activityID).Return([]domain.TrackPoint{
		{ActivityID: s.activityID, Latitude: 25.0, Longitude: 121.0, Timestamp: s.start},
	}, nil)
	s.activities.On("ListCollected", s.ctx, s.activityID).Return([]domain.ActivityCollectedLocation{}, nil).Once()
	s.locations.On("ListRouteCollectable", s.ctx).Return([]domain.Location{near, far}, nil)

	var completion domain.ActivityCompletion
	s.activities.On("Complete", s.ctx, mock.AnythingOfType("domain.ActivityCompletion")).Run(func(args mock.Arguments) {
		completion = args.Get(1).(domain.ActivityCompletion)
	}).Return(&domain.Activity{ID: s.activityID, UserID: s.userID, StartTime: s.start, EndTime: &endTime, TotalCoins: 1}, nil)

	s.activities.On("ListCollected", s.ctx, s.activityID).Return([]domain.ActivityCollectedLocation{
		{ActivityID: s.activityID, LocationID: near.ID, CollectedAt: endTime, CoinsEarned: 1, Location: near},
	}, nil).Once()
	s.expectNoBadges()

	resp, err := s.uc.End(s.ctx, s.userID, s.activityID, dto.EndActivityRequest{
		EndTime:     endTime.Format(time.RFC3339),
		EndLocation: dto.Coordinates{Latitude: floatPtr(25.001), Longitude: floatPtr(121.0)},
	})
	s.Require().NoError(err)

	s.Equal(int64(600), completion.Duration)
	s.InDelta(0.1112, completion.Distance, 0.001)
	s.InDelta(completion.Distance/600*3600, completion.AverageSpeed, 1e-9)
	s.Require().Len(completion.Collected, 1)
	s.Equal(near.ID, completion.Collected[0].LocationID)
	s.True(completion.Collected[0].CollectedAt.Equal(endTime))

	s.Len(resp.Route, 2)
	s.Equal(1, resp.TotalCoinsEarned)
	s.Require().Len(resp.CollectedLocations, 1)
	s.Equal(1, *resp.CollectedLocations[0].CoinsEarned)
	s.Equal(&area, resp.CollectedLocations[0].Area)
	s.NotNil(resp.NewBadges)
	s.Empty(resp.NewBadges)
}

func (s *ActivityUseCaseTestSuite) TestEnd_LosesRace() {
	endTime := s.start.Add(time.Minute)
	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.activities.On("ListTrackPoints", s.ctx, s.activityID).Return([]domain.TrackPoint{}, nil)
	s.activities.On("ListCollected", s.ctx, s.activityID).Return([]domain.ActivityCollectedLocation{}, nil)
	s.activities.On("ListCollectedNFC", s.ctx, s.activityID).Return([]domain.ActivityCollectedLocation{}, nil)
	s.locations.On("ListRouteCollectable", s.ctx).Return([]domain.Location{}, nil)
	s.activities.On("Complete", s.ctx, mock.Anything).Return(nil, repository.ErrActivityAlreadyEnded)

	_, err := s.uc.End(s.ctx, s.userID, s.activityID, dto.EndActivityRequest{
		EndTime:     endTime.Format(time.RFC3339),
		EndLocation: dto.Coordinates{Latitude: floatPtr(25), Longitude: floatPtr(121)},
	})

	requireAppError(s.T(), err, http.StatusBadRequest, "Activity has already ended")
}

// endWithRoute ends the activity over a single stored point at (25, 121)
// and returns the completion handed to the repository.
func (s *ActivityUseCaseTestSuite) endWithRoute(endTime time.Time, endLat float64, candidates []domain.Location) domain.ActivityCompletion {
	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.activities.On("ListTrackPoints", s.ctx, s.activityID).Return([]domain.TrackPoint{
		{ActivityID: s.activityID, Latitude: 25.0, Longitude: 121.0, Timestamp: s.start},
	}, nil)
	s.activities.On("ListCollected", s.ctx, s.activityID).Return([]domain.ActivityCollectedLocation{}, nil)
	s.locations.On("ListRouteCollectable", s.ctx).Return(candidates, nil)

	var completion domain.ActivityCompletion
	s.activities.On("Complete", s.ctx, mock.AnythingOfType("domain.ActivityCompletion")).Run(func(args mock.Arguments) {
		completion = args.Get(1).(domain.ActivityCompletion)
	}).Return(&domain.Activity{ID: s.activityID, UserID: s.userID, StartTime: s.start, EndTime: &endTime}, nil)
	s.expectNoBadges()

	_, err := s.uc.End(s.ctx, s.userID, s.activityID, dto.EndActivityRequest{
		EndTime:     endTime.Format(time.RFC3339Nano),
		EndLocation: dto.Coordinates{Latitude: floatPtr(endLat), Longitude: floatPtr(121.0)},
	})
	s.Require().NoError(err)
	return completion
}

func (s *ActivityUseCaseTestSuite) TestEnd_SkipsNFCEnabledLocations() {
	nfcID := "nfc-001"
	tagged := domain.Location{ID: uuid.New(), Name: "tagged", Latitude: 25.0, Longitude: 121.000005, IsNFCEnabled: true, NFCID: &nfcID}

	completion := s.endWithRoute(s.start.Add(5*time.Minute), 25.001, []domain.Location{tagged})

	s.Empty(completion.Collected)
}

func (s *ActivityUseCaseTestSuite) TestEnd_ZeroDuration() {
	completion := s.endWithRoute(s.start, 25.00135, nil)

	s.Equal(int64(0), completion.Duration)
	s.Equal(0.0, completion.AverageSpeed)
	s.InDelta(0.150, completion.Distance, 0.001)
}

func (s *ActivityUseCaseTestSuite) TestEnd_FloorsDuration() {
	completion := s.endWithRoute(s.start.Add(-1500*time.Millisecond), 25.001, nil)

	s.Equal(int64(-2), completion.Duration)
	s.Equal(0.0, completion.AverageSpeed)
}

func (s *ActivityUseCaseTestSuite) TestCollectNFC_ChecksOwnerBeforeLocation() {
	other := s.inProgress()
	other.UserID = uuid.New()
	s.activities.On("GetByID", s.ctx, s.activityID).Return(other, nil)

	_, err := s.uc.CollectNFC(s.ctx, s.userID, s.activityID, dto.CollectNFCRequest{NFCID: "nfc-001"})

	requireAppError(s.T(), err, http.StatusUnauthorized, "")
	s.locations.AssertNotCalled(s.T(), "GetByNFCID", mock.Anything, mock.Anything)
}

func (s *ActivityUseCaseTestSuite) TestCollectNFC_Disabled() {
	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.locations.On("GetByNFCID", s.ctx, "nfc-001").Return(&domain.Location{ID: uuid.New(), NFCID: strPtr("nfc-001")}, nil)

	_, err := s.uc.CollectNFC(s.ctx, s.userID, s.activityID, dto.CollectNFCRequest{NFCID: "nfc-001"})

	requireAppError(s.T(), err, http.StatusBadRequest, "")
}

func (s *ActivityUseCaseTestSuite) TestCollectNFC_UnknownTag() {
	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.locations.On("GetByNFCID", s.ctx, "nope").Return(nil, repository.ErrNotFound)

	_, err := s.uc.CollectNFC(s.ctx, s.userID, s.activityID, dto.CollectNFCRequest{NFCID: "nope"})

	requireAppError(s.T(), err, http.StatusNotFound, "")
}

func (s *ActivityUseCaseTestSuite) TestCollectNFC_FirstCollectionUnlocksBadge() {
	area := "台北市信義區"
	loc := &domain.Location{ID: uuid.New(), Name: "101", NFCID: strPtr("nfc-001"), IsNFCEnabled: true, Area: &area}
	badge := domain.Badge{ID: uuid.New(), Name: "Tower", RequiredLocationIDs: []uuid.UUID{loc.ID}}

	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.locations.On("GetByNFCID", s.ctx, "nfc-001").Return(loc, nil)
	s.activities.On("CollectNFC", s.ctx, s.activityID, s.userID, loc.ID).
		Return(&domain.NFCCollection{IsFirstCollection: true, AddedToActivity: true, ActivityCoins: 1}, nil)
	s.badges.On("List", s.ctx, "", (*domain.Page)(nil)).Return([]domain.Badge{badge}, nil)
	s.collections.On("ListByUser", s.ctx, s.userID).Return(collectedSet(s.userID, loc.ID), nil)
	s.userBadges.On("ListByUser", s.ctx, s.userID).Return([]domain.UserBadge{}, nil)
	s.userBadges.On("SaveBatch", s.ctx, mock.Anything).Return(nil)
	s.activities.On("SumCoinsByUser", s.ctx, s.userID).Return(7, nil)

	resp, err := s.uc.CollectNFC(s.ctx, s.userID, s.activityID, dto.CollectNFCRequest{NFCID: "nfc-001"})
	s.Require().NoError(err)

	s.True(resp.IsFirstCollection)
	s.Equal(1, resp.CoinsEarned)
	s.Equal(7, resp.TotalCoins)
	s.Require().Len(resp.NewBadges, 1)
	s.Equal(badge.ID, resp.NewBadges[0].BadgeID)
}

func (s *ActivityUseCaseTestSuite) TestCollectNFC_RepeatSkipsEvaluation() {
	area := "台北市信義區"
	loc := &domain.Location{ID: uuid.New(), Name: "101", NFCID: strPtr("nfc-001"), IsNFCEnabled: true, Area: &area}

	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.locations.On("GetByNFCID", s.ctx, "nfc-001").Return(loc, nil)
	s.activities.On("CollectNFC", s.ctx, s.activityID, s.userID, loc.ID).
		Return(&domain.NFCCollection{IsFirstCollection: false}, nil)
	s.activities.On("SumCoinsByUser", s.ctx, s.userID).Return(3, nil)

	resp, err := s.uc.CollectNFC(s.ctx, s.userID, s.activityID, dto.CollectNFCRequest{NFCID: "nfc-001"})
	s.Require().NoError(err)

	s.False(resp.IsFirstCollection)
	s.NotNil(resp.NewBadges)
	s.Empty(resp.NewBadges)
	s.badges.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ActivityUseCaseTestSuite) TestList_FiltersAndPaginates() {
	s.users.On("Exists", s.ctx, s.userID).Return(true, nil)
	dist := 1.5
	s.activities.On("List", s.ctx, s.userID, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.EndFrom != nil && f.EndTo == nil
	}), domain.Page{Number: 2, Limit: 20}).Return([]domain.ActivitySummary{
		{Activity: domain.Activity{ID: s.activityID, StartTime: s.start, Distance: &dist, TotalCoins: 2}, CollectedCount: 2},
	}, 21, nil)

	resp, err := s.uc.List(s.ctx, s.userID, dto.ListActivitiesQuery{
		PageQuery: dto.PageQuery{Page: 2},
		StartDate: "2025-01-01T00:00:00Z",
	})
	s.Require().NoError(err)

	s.Equal(dto.Pagination{CurrentPage: 2, TotalPages: 2, TotalRecords: 21, Limit: 20}, resp.Pagination)
	s.Require().Len(resp.Activities, 1)
	s.Equal(1.5, resp.Activities[0].Distance)
	s.Equal(int64(0), resp.Activities[0].Duration)
	s.Equal(2, resp.Activities[0].CollectedLocationsCount)
}

func (s *ActivityUseCaseTestSuite) TestDetail_InProgressHasNullEnd() {
	area := "台北市大安區"
	loc := domain.Location{ID: uuid.New(), Name: "park", Area: &area}
	at := s.start.Add(time.Minute)

	s.activities.On("GetByID", s.ctx, s.activityID).Return(s.inProgress(), nil)
	s.activities.On("ListTrackPoints", s.ctx, s.activityID).Return([]domain.TrackPoint{
		{Latitude: 25, Longitude: 121, Timestamp: s.start},
	}, nil)
	s.activities.On("ListCollected", s.ctx, s.activityID).Return([]domain.ActivityCollectedLocation{
		{LocationID: loc.ID, CollectedAt: at, CoinsEarned: 1, Location: loc},
	}, nil)

	resp, err := s.uc.Detail(s.ctx, s.userID, s.activityID)
	s.Require().NoError(err)

	s.Nil(resp.EndTime)
	s.Equal(1, resp.CoinsEarned)
	s.Require().Len(resp.CollectedLocations, 1)
	s.Require().NotNil(resp.CollectedLocations[0].CollectedAt)
	s.True(resp.CollectedLocations[0].CollectedAt.Equal(at))
	s.Nil(resp.CollectedLocations[0].CoinsEarned)
}
