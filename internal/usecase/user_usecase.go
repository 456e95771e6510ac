package usecase

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

const defaultListPageSize = 100

type UserUseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zap.Logger) *UserUseCase {
	return &UserUseCase{users: users, logger: logger}
}

func (uc *UserUseCase) List(ctx context.Context, q dto.PageQuery) (*dto.UserListResponse, error) {
	q.Normalize(defaultListPageSize)

	users, err := uc.users.List(ctx, domain.Page{Number: q.Page, Limit: q.Limit})
	if err != nil {
		return nil, err
	}
	total, err := uc.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{Count: total, Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.UserResponse{
			UserID:    u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Avatar:    u.AvatarURL,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return resp, nil
}

// Profile returns the user with totals over their ended activities.
func (uc *UserUseCase) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}

	stats, err := uc.users.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		UserID:        user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Avatar:        user.AvatarURL,
		TotalDistance: stats.TotalDistance,
		TotalTime:     stats.TotalTime,
		TotalCoins:    stats.TotalCoins,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}, nil
}

func requireUser(ctx context.Context, users repository.UserRepository, userID uuid.UUID) error {
	exists, err := users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errUserNotFound
	}
	return nil
}
