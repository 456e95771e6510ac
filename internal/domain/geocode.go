package domain

import (
	"errors"
	"fmt"
)

// Geocode error categories, mirroring the provider's status values.
const (
	GeocodeRequestDenied  = "REQUEST_DENIED"
	GeocodeOverQueryLimit = "OVER_QUERY_LIMIT"
	GeocodeInvalidRequest = "INVALID_REQUEST"
	GeocodeHTTPError      = "HTTP_ERROR"
	GeocodeTransportError = "TRANSPORT_ERROR"
	GeocodeDecodeError    = "DECODE_ERROR"
)

// ErrNoGeocodeResult means the provider answered but found no area.
var ErrNoGeocodeResult = errors.New("no geocode result")

// GeocodeError is a failed reverse geocode, grouped by category for log capping.
type GeocodeError struct {
	Category string
	Detail   string
	Err      error
}

func (e *GeocodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("geocoding %s", e.Category)
	}
	return fmt.Sprintf("geocoding %s: %s", e.Category, e.Detail)
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}
