package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
)

type BadgeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Badge, error)
	// List returns badges with their requirement sets, newest first.
	List(ctx context.Context, search string, page *domain.Page) ([]domain.Badge, error)
	Count(ctx context.Context, search string) (int, error)

	// Create and Update write the badge and its requirements in one transaction.
	Create(ctx context.Context, badge *domain.Badge) error
	Update(ctx context.Context, id uuid.UUID, patch domain.BadgePatch) (*domain.Badge, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserBadgeRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserBadge, error)

	// SaveBatch upserts every row in a single transaction.
	SaveBatch(ctx context.Context, badges []domain.UserBadge) error
}
