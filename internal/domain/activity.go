package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityStatus is the lifecycle state of an activity.
type ActivityStatus string

const (
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityEnded      ActivityStatus = "ended"
)

// CoinsPerLocation is awarded for every location collected within an activity.
const CoinsPerLocation = 1

type Activity struct {
	ID           uuid.UUID  `db:"id"`
	UserID       uuid.UUID  `db:"user_id"`
	StartTime    time.Time  `db:"start_time"`
	EndTime      *time.Time `db:"end_time"`
	Distance     *float64   `db:"distance"`
	Duration     *int64     `db:"duration"`
	AverageSpeed *float64   `db:"average_speed"`
	TotalCoins   int        `db:"total_coins"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (a *Activity) Status() ActivityStatus {
	if a.EndTime != nil {
		return ActivityEnded
	}
	return ActivityInProgress
}

func (a *Activity) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}

type TrackPoint struct {
	ID         int64     `db:"id"`
	ActivityID uuid.UUID `db:"activity_id"`
	Latitude   float64   `db:"latitude"`
	Longitude  float64   `db:"longitude"`
	Timestamp  time.Time `db:"timestamp"`
	Accuracy   *float64  `db:"accuracy"`
}

func (p *TrackPoint) Coordinate() Coordinate {
	return Coordinate{Lat: p.Latitude, Lon: p.Longitude}
}

// ActivityCollectedLocation is the per-activity ledger entry of a collected
// location, joined with the location itself for reads.
type ActivityCollectedLocation struct {
	ActivityID  uuid.UUID `db:"activity_id"`
	LocationID  uuid.UUID `db:"location_id"`
	CollectedAt time.Time `db:"collected_at"`
	CoinsEarned int       `db:"coins_earned"`
	Location    Location  `db:"location"`
}

// ActivitySummary is a list row with its collected-location count.
type ActivitySummary struct {
	Activity
	CollectedCount int `db:"collected_count"`
}

// ActivityFilter restricts listings by end time.
type ActivityFilter struct {
	EndFrom *time.Time
	EndTo   *time.Time
}

// ActivityCompletion is everything persisted atomically when an activity ends.
type ActivityCompletion struct {
	ActivityID   uuid.UUID
	UserID       uuid.UUID
	EndTime      time.Time
	EndPoint     TrackPoint
	Distance     float64
	Duration     int64
	AverageSpeed float64
	Collected    []ActivityCollectedLocation
}

// NFCCollection is the outcome of collecting a location by NFC tap.
type NFCCollection struct {
	IsFirstCollection bool
	AddedToActivity   bool
	ActivityCoins     int
}
