package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserListResponse struct {
	Count int
	Users []UserResponse
}

type UserProfileResponse struct {
	UserID        uuid.UUID `json:"userId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Avatar        *string   `json:"avatar"`
	TotalDistance float64   `json:"totalDistance"`
	TotalTime     int64     `json:"totalTime"`
	TotalCoins    int64     `json:"totalCoins"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
