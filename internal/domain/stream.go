package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StreamLocationArea = "stream:location:area"
)

// AreaResolveEvent asks the background worker to resolve a location's area.
// A retried event is not processed before NotBefore.
type AreaResolveEvent struct {
	LocationID uuid.UUID  `json:"location_id"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Attempt    int        `json:"attempt,omitempty"`
	NotBefore  *time.Time `json:"not_before,omitempty"`
}

// StreamMessage is a raw message read from a stream.
type StreamMessage struct {
	ID   string
	Data string
}
