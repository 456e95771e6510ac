package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
)

func TestUserUseCase_ListDefaultsPageAndReportsTotal(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewUserUseCase(users, zap.NewNop())
	ctx := context.Background()
	avatar := "https://cdn.test/a.png"
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	users.On("List", ctx, domain.Page{Number: 1, Limit: 100}).Return([]domain.User{
		{ID: uuid.New(), Name: "Mei", Email: "mei@example.com", AvatarURL: &avatar, CreatedAt: created, UpdatedAt: created},
	}, nil)
	users.On("Count", ctx).Return(42, nil)

	resp, err := uc.List(ctx, dto.PageQuery{})
	require.NoError(t, err)

	assert.Equal(t, 42, resp.Count)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "Mei", resp.Users[0].Name)
	assert.Equal(t, &avatar, resp.Users[0].Avatar)
	users.AssertExpectations(t)
}

func TestUserUseCase_ListPropagatesCountError(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewUserUseCase(users, zap.NewNop())
	ctx := context.Background()
	boom := errors.New("db down")

	users.On("List", ctx, domain.Page{Number: 2, Limit: 5}).Return([]domain.User{}, nil)
	users.On("Count", ctx).Return(0, boom)

	_, err := uc.List(ctx, dto.PageQuery{Page: 2, Limit: 5})
	assert.ErrorIs(t, err, boom)
}

func TestUserUseCase_ProfileTotals(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewUserUseCase(users, zap.NewNop())
	ctx := context.Background()
	id := uuid.New()

	users.On("GetByID", ctx, id).Return(&domain.User{ID: id, Name: "Mei", Email: "mei@example.com"}, nil)
	users.On("Stats", ctx, id).Return(&domain.UserStats{TotalDistance: 1234.5, TotalTime: 3600, TotalCoins: 70}, nil)

	resp, err := uc.Profile(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, resp.UserID)
	assert.InDelta(t, 1234.5, resp.TotalDistance, 1e-9)
	assert.Equal(t, int64(3600), resp.TotalTime)
	assert.Equal(t, int64(70), resp.TotalCoins)
	assert.Nil(t, resp.Avatar)
}

func TestUserUseCase_ProfileNotFound(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewUserUseCase(users, zap.NewNop())
	ctx := context.Background()
	id := uuid.New()

	users.On("GetByID", ctx, id).Return(nil, repository.ErrNotFound)

	_, err := uc.Profile(ctx, id)
	requireAppError(t, err, http.StatusNotFound, "User not found")
	users.AssertNotCalled(t, "Stats", ctx, id)
}
