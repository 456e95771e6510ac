package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"go.uber.org/zap"
)

const userColumns = `id, name, email, avatar_url, created_at, updated_at`

type userRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	users := make([]domain.User, 0)
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &users, query, page.Limit, page.Offset()); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *userRepository) Stats(ctx context.Context, id uuid.UUID) (*domain.UserStats, error) {
	query := `
		SELECT
			COALESCE(SUM(distance), 0)    AS total_distance,
			COALESCE(SUM(duration), 0)    AS total_time,
			COALESCE(SUM(total_coins), 0) AS total_coins
		FROM activities
		WHERE user_id = $1 AND end_time IS NOT NULL
	`

	var stats domain.UserStats
	if err := r.db.GetContext(ctx, &stats, query, id); err != nil {
		r.logger.Error("Failed to aggregate user stats", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &stats, nil
}
