package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
)

// CollectionRepository reads the user's cross-activity collection set.
type CollectionRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserLocationCollection, error)
	Exists(ctx context.Context, userID, locationID uuid.UUID) (bool, error)
}
