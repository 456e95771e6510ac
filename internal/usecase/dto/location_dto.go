package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
)

type ListLocationsQuery struct {
	PageQuery
	Badge string `query:"badge" validate:"omitempty,uuid"`
}

type CreateLocationRequest struct {
	Name         string         `json:"name" validate:"required,min=1"`
	Latitude     *float64       `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude    *float64       `json:"longitude" validate:"required,min=-180,max=180"`
	Description  *string        `json:"description"`
	IsNFCEnabled *bool          `json:"isNfcEnabled"`
	NFCID        NullableString `json:"nfcId"`
}

type UpdateLocationRequest struct {
	Name         *string        `json:"name" validate:"omitempty,min=1"`
	Latitude     *float64       `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64       `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Description  *string        `json:"description"`
	IsNFCEnabled *bool          `json:"isNfcEnabled"`
	NFCID        NullableString `json:"nfcId"`
}

type UserMapQuery struct {
	Badge  string `query:"badge" validate:"omitempty,uuid"`
	Bounds string `query:"bounds" validate:"omitempty,bounds"`
}

type LocationResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Description  *string   `json:"description"`
	NFCID        *string   `json:"nfcId"`
	IsNFCEnabled bool      `json:"isNfcEnabled"`
	Area         *string   `json:"area"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewLocationResponse(l domain.Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Description:  l.Description,
		NFCID:        l.NFCID,
		IsNFCEnabled: l.IsNFCEnabled,
		Area:         l.Area,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

type LocationListResponse struct {
	Count     int
	Locations []LocationResponse
}

type MapLocation struct {
	LocationResponse
	IsCollected bool       `json:"isCollected"`
	CollectedAt *time.Time `json:"collectedAt"`
}

type UserMapResponse struct {
	Locations []MapLocation `json:"locations"`
}
