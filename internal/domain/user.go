package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	AvatarURL *string   `db:"avatar_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserStats aggregates a user's ended activities.
type UserStats struct {
	TotalDistance float64 `db:"total_distance"`
	TotalTime     int64   `db:"total_time"`
	TotalCoins    int64   `db:"total_coins"`
}
