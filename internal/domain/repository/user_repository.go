package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
)

// UserRepository provides read access to users and their aggregates.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, page domain.Page) ([]domain.User, error)
	Count(ctx context.Context) (int, error)

	// Stats sums distance, duration and coins over the user's ended activities.
	Stats(ctx context.Context, id uuid.UUID) (*domain.UserStats, error)
}
