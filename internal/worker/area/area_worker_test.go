package area_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/worker/area"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const group = "area-test"

type AreaWorkerSuite struct {
	suite.Suite
	streams   *MockStreamRepository
	locations *MockLocationRepository
	resolver  *fakeResolver
	worker    *area.AreaWorker
	ctx       context.Context
	now       time.Time
}

func (s *AreaWorkerSuite) SetupTest() {
	s.streams = new(MockStreamRepository)
	s.locations = new(MockLocationRepository)
	s.resolver = &fakeResolver{}
	s.worker = area.NewAreaWorker(s.streams, s.locations, s.resolver, group, 3, zap.NewNop())
	s.ctx = context.Background()
	s.now = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	s.worker.SetClock(func() time.Time { return s.now })
}

func (s *AreaWorkerSuite) TearDownTest() {
	s.streams.AssertExpectations(s.T())
	s.locations.AssertExpectations(s.T())
}

func TestAreaWorkerSuite(t *testing.T) {
	suite.Run(t, new(AreaWorkerSuite))
}

func (s *AreaWorkerSuite) message(id string, event domain.AreaResolveEvent) domain.StreamMessage {
	data, err := json.Marshal(event)
	s.Require().NoError(err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func (s *AreaWorkerSuite) expectBatch(msgs ...domain.StreamMessage) {
	s.streams.On("ConsumeBatch", mock.Anything, domain.StreamLocationArea, group, mock.Anything, 20).Return(msgs, nil).Once()
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	s.streams.On("AckMessages", mock.Anything, domain.StreamLocationArea, group, ids).Return(nil).Once()
}

func (s *AreaWorkerSuite) TestEmptyBatch() {
	s.streams.On("ConsumeBatch", mock.Anything, domain.StreamLocationArea, group, mock.Anything, 20).Return([]domain.StreamMessage{}, nil).Once()

	n, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(0, n)
}

func (s *AreaWorkerSuite) TestResolvesAndStoresArea() {
	id := uuid.New()
	district := "Da'an District"
	s.resolver.area = &district
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id, Latitude: 25.03, Longitude: 121.54}))
	s.locations.On("GetByID", mock.Anything, id).Return(&domain.Location{ID: id, Latitude: 25.03, Longitude: 121.54}, nil)
	s.locations.On("UpdateArea", mock.Anything, id, district).Return(nil)

	n, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(1, n)
	s.Equal(1, s.resolver.calls)
}

func (s *AreaWorkerSuite) TestMalformedMessageIsAcked() {
	s.expectBatch(domain.StreamMessage{ID: "1-0", Data: "{not json"})

	n, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(1, n)
	s.Equal(0, s.resolver.calls)
}

func (s *AreaWorkerSuite) TestSkipsLocationWithArea() {
	id := uuid.New()
	existing := "Zhongzheng District"
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id}))
	s.locations.On("GetByID", mock.Anything, id).Return(&domain.Location{ID: id, Area: &existing}, nil)

	_, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(0, s.resolver.calls)
}

func (s *AreaWorkerSuite) TestSkipsDeletedLocation() {
	id := uuid.New()
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id}))
	s.locations.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(0, s.resolver.calls)
}

func (s *AreaWorkerSuite) TestRequeuesUnresolvedWithCurrentCoordinates() {
	id := uuid.New()
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id, Latitude: 1, Longitude: 1}))
	s.locations.On("GetByID", mock.Anything, id).Return(&domain.Location{ID: id, Latitude: 25.1, Longitude: 121.5}, nil)
	s.streams.On("PublishToStream", mock.Anything, domain.StreamLocationArea, mock.MatchedBy(func(e domain.AreaResolveEvent) bool {
		return e.LocationID == id && e.Latitude == 25.1 && e.Longitude == 121.5 && e.Attempt == 1 &&
			e.NotBefore != nil && e.NotBefore.Equal(s.now.Add(30*time.Second))
	})).Return(nil).Once()

	_, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
}

func (s *AreaWorkerSuite) TestRetryDelayDoubles() {
	id := uuid.New()
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id, Attempt: 1}))
	s.locations.On("GetByID", mock.Anything, id).Return(&domain.Location{ID: id}, nil)
	s.streams.On("PublishToStream", mock.Anything, domain.StreamLocationArea, mock.MatchedBy(func(e domain.AreaResolveEvent) bool {
		return e.Attempt == 2 && e.NotBefore != nil && e.NotBefore.Equal(s.now.Add(time.Minute))
	})).Return(nil).Once()

	_, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(1, s.resolver.calls)
}

func (s *AreaWorkerSuite) TestDefersEventUntilDue() {
	id := uuid.New()
	due := s.now.Add(10 * time.Second)
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id, Attempt: 1, NotBefore: &due}))
	s.streams.On("PublishToStream", mock.Anything, domain.StreamLocationArea, mock.MatchedBy(func(e domain.AreaResolveEvent) bool {
		return e.LocationID == id && e.Attempt == 1 && e.NotBefore != nil && e.NotBefore.Equal(due)
	})).Return(nil).Once()

	n, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(0, n)
	s.Equal(0, s.resolver.calls)
	s.locations.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *AreaWorkerSuite) TestProcessesDueEvent() {
	id := uuid.New()
	district := "Xinyi District"
	s.resolver.area = &district
	due := s.now.Add(-time.Second)
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id, Attempt: 1, NotBefore: &due}))
	s.locations.On("GetByID", mock.Anything, id).Return(&domain.Location{ID: id}, nil)
	s.locations.On("UpdateArea", mock.Anything, id, district).Return(nil)

	n, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.Equal(1, n)
}

func (s *AreaWorkerSuite) TestDropsAfterMaxRetries() {
	id := uuid.New()
	s.expectBatch(s.message("1-0", domain.AreaResolveEvent{LocationID: id, Attempt: 2}))
	s.locations.On("GetByID", mock.Anything, id).Return(&domain.Location{ID: id}, nil)

	_, err := s.worker.ProcessBatch(s.ctx)

	s.NoError(err)
	s.streams.AssertNotCalled(s.T(), "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AreaWorkerSuite) TestConsumeErrorIsReturned() {
	s.streams.On("ConsumeBatch", mock.Anything, domain.StreamLocationArea, group, mock.Anything, 20).Return(nil, assert.AnError).Once()

	_, err := s.worker.ProcessBatch(s.ctx)

	s.Error(err)
}

func TestAreaWorker_StopsOnContextCancel(t *testing.T) {
	streams := new(MockStreamRepository)
	streams.On("CreateConsumerGroup", mock.Anything, domain.StreamLocationArea, group).Return(nil)
	streams.On("ConsumeBatch", mock.Anything, domain.StreamLocationArea, group, mock.Anything, 20).Return([]domain.StreamMessage{}, nil)

	w := area.NewAreaWorker(streams, new(MockLocationRepository), &fakeResolver{}, group, 3, zap.NewNop())
	assert.Equal(t, "area-resolver", w.Name())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestAreaWorker_ConsumerGroupFailure(t *testing.T) {
	streams := new(MockStreamRepository)
	streams.On("CreateConsumerGroup", mock.Anything, domain.StreamLocationArea, group).Return(assert.AnError)

	w := area.NewAreaWorker(streams, new(MockLocationRepository), &fakeResolver{}, group, 3, zap.NewNop())

	assert.Error(t, w.Start(context.Background()))
}
