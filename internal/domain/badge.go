package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	ID                  uuid.UUID   `db:"id"`
	Name                string      `db:"name"`
	Description         *string     `db:"description"`
	ImageURL            *string     `db:"image_url"`
	Color               *string     `db:"color"`
	CreatedAt           time.Time   `db:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at"`
	RequiredLocationIDs []uuid.UUID `db:"-"`
}

// BadgePatch carries optional badge fields; RequiredLocationIDs replaces the
// whole requirement set when non-nil.
type BadgePatch struct {
	Name                *string
	Description         *string
	ImageURL            *string
	SetImageURL         bool
	Color               *string
	SetColor            bool
	RequiredLocationIDs []uuid.UUID
}

type UserBadgeStatus string

const (
	BadgeLocked     UserBadgeStatus = "locked"
	BadgeInProgress UserBadgeStatus = "in_progress"
	BadgeCollected  UserBadgeStatus = "collected"
)

func (s UserBadgeStatus) Valid() bool {
	switch s {
	case BadgeLocked, BadgeInProgress, BadgeCollected:
		return true
	}
	return false
}

type UserBadge struct {
	ID         uuid.UUID       `db:"id"`
	UserID     uuid.UUID       `db:"user_id"`
	BadgeID    uuid.UUID       `db:"badge_id"`
	Status     UserBadgeStatus `db:"status"`
	UnlockedAt *time.Time      `db:"unlocked_at"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// BadgeProgress counts how many required locations a user holds.
type BadgeProgress struct {
	Collected  int `json:"collected"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ComputeProgress counts required locations present in collected.
func ComputeProgress[T any](required []uuid.UUID, collected map[uuid.UUID]T) BadgeProgress {
	count := 0
	for _, id := range required {
		if _, ok := collected[id]; ok {
			count++
		}
	}
	return NewBadgeProgress(count, len(required))
}

func NewBadgeProgress(collected, total int) BadgeProgress {
	p := BadgeProgress{Collected: collected, Total: total, Percentage: 100}
	if total > 0 {
		p.Percentage = int(math.Min(100, math.Round(float64(collected)/float64(total)*100)))
	}
	return p
}

func (p BadgeProgress) Status() UserBadgeStatus {
	switch {
	case p.Total == 0 || p.Collected >= p.Total:
		return BadgeCollected
	case p.Collected > 0:
		return BadgeInProgress
	default:
		return BadgeLocked
	}
}

// UnlockedBadge is a badge that entered the collected state.
type UnlockedBadge struct {
	BadgeID    uuid.UUID
	Name       string
	ImageURL   *string
	UnlockedAt time.Time
}
