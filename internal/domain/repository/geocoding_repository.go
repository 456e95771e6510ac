package repository

import (
	"context"
)

// GeocodingRepository resolves coordinates to an administrative area label.
type GeocodingRepository interface {
	// ReverseGeocode returns domain.ErrNoGeocodeResult when nothing matched
	// and *domain.GeocodeError for provider failures.
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)

	// Configured reports whether the provider credentials are present.
	Configured() bool
}
