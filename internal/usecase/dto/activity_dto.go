package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartActivityRequest struct {
	StartTime     string      `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	StartLocation Coordinates `json:"startLocation" validate:"required"`
}

type TrackPointRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Timestamp string   `json:"timestamp" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Accuracy  *float64 `json:"accuracy" validate:"omitempty,gt=0"`
}

type TrackActivityRequest struct {
	Points []TrackPointRequest `json:"points" validate:"required,min=1,dive"`
}

type EndActivityRequest struct {
	EndTime     string      `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndLocation Coordinates `json:"endLocation" validate:"required"`
}

type CollectNFCRequest struct {
	NFCID string `json:"nfcId" validate:"required,min=1"`
}

type ListActivitiesQuery struct {
	PageQuery
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type StartActivityResponse struct {
	ActivityID uuid.UUID `json:"activityId"`
	StartTime  time.Time `json:"startTime"`
	Status     string    `json:"status"`
}

type TrackActivityResponse struct {
	PointsAdded int `json:"pointsAdded"`
	TotalPoints int `json:"totalPoints"`
}

type RoutePoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type CollectedLocation struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Area        *string    `json:"area"`
	CoinsEarned *int       `json:"coinsEarned,omitempty"`
	CollectedAt *time.Time `json:"collectedAt,omitempty"`
}

type NewBadge struct {
	BadgeID    uuid.UUID `json:"badgeId"`
	Name       string    `json:"name"`
	ImageURL   *string   `json:"imageUrl"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

type EndActivityResponse struct {
	ActivityID         uuid.UUID           `json:"activityId"`
	StartTime          time.Time           `json:"startTime"`
	EndTime            time.Time           `json:"endTime"`
	Distance           float64             `json:"distance"`
	Duration           int64               `json:"duration"`
	AverageSpeed       float64             `json:"averageSpeed"`
	Route              []RoutePoint        `json:"route"`
	CollectedLocations []CollectedLocation `json:"collectedLocations"`
	TotalCoinsEarned   int                 `json:"totalCoinsEarned"`
	NewBadges          []NewBadge          `json:"newBadges"`
}

// ActivityDetailResponse has a null endTime while the activity is in progress.
type ActivityDetailResponse struct {
	ActivityID         uuid.UUID           `json:"activityId"`
	StartTime          time.Time           `json:"startTime"`
	EndTime            *time.Time          `json:"endTime"`
	Distance           float64             `json:"distance"`
	Duration           int64               `json:"duration"`
	AverageSpeed       float64             `json:"averageSpeed"`
	Route              []RoutePoint        `json:"route"`
	CollectedLocations []CollectedLocation `json:"collectedLocations"`
	CoinsEarned        int                 `json:"coinsEarned"`
}

type CollectNFCResponse struct {
	LocationID        uuid.UUID  `json:"locationId"`
	Name              string     `json:"name"`
	Area              *string    `json:"area"`
	CoinsEarned       int        `json:"coinsEarned"`
	TotalCoins        int        `json:"totalCoins"`
	IsFirstCollection bool       `json:"isFirstCollection"`
	NewBadges         []NewBadge `json:"newBadges"`
}

type ActivityListItem struct {
	ActivityID              uuid.UUID `json:"activityId"`
	Date                    time.Time `json:"date"`
	Distance                float64   `json:"distance"`
	Duration                int64     `json:"duration"`
	AverageSpeed            float64   `json:"averageSpeed"`
	CoinsEarned             int       `json:"coinsEarned"`
	CollectedLocationsCount int       `json:"collectedLocationsCount"`
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
	Limit        int `json:"limit"`
}

type ActivityListResponse struct {
	Activities []ActivityListItem `json:"activities"`
	Pagination Pagination         `json:"pagination"`
}
