package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"go.uber.org/zap"
)

type collectionRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewCollectionRepository(db *DB) repository.CollectionRepository {
	return &collectionRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *collectionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserLocationCollection, error) {
	collections := make([]domain.UserLocationCollection, 0)
	query := `
		SELECT user_id, location_id, collected_at
		FROM user_location_collections
		WHERE user_id = $1
		ORDER BY collected_at ASC
	`
	if err := r.db.SelectContext(ctx, &collections, query, userID); err != nil {
		r.logger.Error("Failed to list user collections", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("list user collections: %w", err)
	}
	return collections, nil
}

func (r *collectionRepository) Exists(ctx context.Context, userID, locationID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_location_collections WHERE user_id = $1 AND location_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, userID, locationID); err != nil {
		return false, fmt.Errorf("check user collection: %w", err)
	}
	return exists, nil
}
