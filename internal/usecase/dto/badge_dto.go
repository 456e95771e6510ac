package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
)

type ListBadgesQuery struct {
	PageQuery
	Search string `query:"search"`
}

type CreateBadgeRequest struct {
	Name                string         `json:"name" validate:"required,min=1"`
	Description         *string        `json:"description"`
	ImageURL            NullableString `json:"imageUrl" validate:"omitempty,url"`
	Color               NullableString `json:"color" validate:"omitempty,hexcolor8"`
	RequiredLocationIDs []string       `json:"requiredLocationIds" validate:"required,min=1,dive,uuid"`
}

type UpdateBadgeRequest struct {
	Name                *string        `json:"name" validate:"omitempty,min=1"`
	Description         *string        `json:"description"`
	ImageURL            NullableString `json:"imageUrl" validate:"omitempty,url"`
	Color               NullableString `json:"color" validate:"omitempty,hexcolor8"`
	RequiredLocationIDs []string       `json:"requiredLocationIds" validate:"omitempty,min=1,dive,uuid"`
}

type UserBadgesQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=locked in_progress collected"`
}

type BadgeResponse struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	Description         *string     `json:"description"`
	ImageURL            *string     `json:"imageUrl"`
	Color               *string     `json:"color"`
	Area                *string     `json:"area"`
	TotalLocations      int         `json:"totalLocations"`
	RequiredLocationIDs []uuid.UUID `json:"requiredLocationIds"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type BadgeListResponse struct {
	Count  int
	Badges []BadgeResponse
}

type UserBadgeSummary struct {
	BadgeID        uuid.UUID              `json:"badgeId"`
	Name           string                 `json:"name"`
	Description    *string                `json:"description"`
	ImageURL       *string                `json:"imageUrl"`
	Color          *string                `json:"color"`
	Area           *string                `json:"area"`
	TotalLocations int                    `json:"totalLocations"`
	Status         domain.UserBadgeStatus `json:"status"`
	UnlockedAt     *time.Time             `json:"unlockedAt"`
	Progress       domain.BadgeProgress   `json:"progress"`
}

type UserBadgesResponse struct {
	TotalBadges     int                `json:"totalBadges"`
	CollectedCount  int                `json:"collectedCount"`
	InProgressCount int                `json:"inProgressCount"`
	LockedCount     int                `json:"lockedCount"`
	Badges          []UserBadgeSummary `json:"badges"`
}

type RequiredLocation struct {
	LocationID  uuid.UUID  `json:"locationId"`
	Name        string     `json:"name"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Area        *string    `json:"area"`
	IsCollected bool       `json:"isCollected"`
	CollectedAt *time.Time `json:"collectedAt"`
}

type UserBadgeDetailResponse struct {
	UserBadgeSummary
	RequiredLocations []RequiredLocation `json:"requiredLocations"`
}
