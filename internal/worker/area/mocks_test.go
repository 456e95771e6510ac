package area_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, ids []string) error {
	return m.Called(ctx, stream, group, ids).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByNFCID(ctx context.Context, nfcID string) (*domain.Location, error) {
	args := m.Called(ctx, nfcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Location, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) List(ctx context.Context, filter domain.LocationFilter, page *domain.Page) ([]domain.Location, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) Count(ctx context.Context, filter domain.LocationFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockLocationRepository) ListRouteCollectable(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) ListMissingArea(ctx context.Context, limit int) ([]domain.Location, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) NFCIDExists(ctx context.Context, nfcID string, exclude *uuid.UUID) (bool, error) {
	args := m.Called(ctx, nfcID, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository) ListNFCIDs(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	return m.Called(ctx, location).Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, id uuid.UUID, patch domain.LocationPatch) (*domain.Location, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) UpdateArea(ctx context.Context, id uuid.UUID, area string) error {
	return m.Called(ctx, id, area).Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type fakeResolver struct {
	area  *string
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, _, _ float64) *string {
	f.calls++
	return f.area
}
