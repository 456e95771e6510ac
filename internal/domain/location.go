package domain

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	Latitude     float64   `db:"latitude"`
	Longitude    float64   `db:"longitude"`
	NFCID        *string   `db:"nfc_id"`
	IsNFCEnabled bool      `db:"is_nfc_enabled"`
	Area         *string   `db:"area"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (l *Location) Coordinate() Coordinate {
	return Coordinate{Lat: l.Latitude, Lon: l.Longitude}
}

// LocationFilter narrows location listings. Zero values mean no filter.
type LocationFilter struct {
	BadgeID *uuid.UUID
	Bounds  *BoundingBox
}

// LocationPatch carries the optional fields of a location update. Set*
// flags distinguish "leave unchanged" from "set to null".
type LocationPatch struct {
	Name         *string
	Description  *string
	Latitude     *float64
	Longitude    *float64
	IsNFCEnabled *bool
	NFCID        *string
	SetNFCID     bool
	Area         *string
	SetArea      bool
}

// UserLocationCollection marks the first time a user collected a location.
type UserLocationCollection struct {
	UserID      uuid.UUID `db:"user_id"`
	LocationID  uuid.UUID `db:"location_id"`
	CollectedAt time.Time `db:"collected_at"`
}

// SharedArea returns the area common to all locations when exactly one
// distinct non-null area exists among them.
func SharedArea(locations []Location) *string {
	var shared *string
	for i := range locations {
		area := locations[i].Area
		if area == nil {
			continue
		}
		if shared == nil {
			shared = area
			continue
		}
		if *shared != *area {
			return nil
		}
	}
	return shared
}
