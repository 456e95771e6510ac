package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
)

type ActivityRepository interface {
	// Create inserts the activity together with its first track point.
	Create(ctx context.Context, activity *domain.Activity, first domain.TrackPoint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)

	AddTrackPoints(ctx context.Context, activityID uuid.UUID, points []domain.TrackPoint) error
	CountTrackPoints(ctx context.Context, activityID uuid.UUID) (int, error)
	ListTrackPoints(ctx context.Context, activityID uuid.UUID) ([]domain.TrackPoint, error)

	// ListCollected returns the activity's collected locations ordered by collection time.
	ListCollected(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityCollectedLocation, error)
	// ListCollectedNFC is ListCollected restricted to NFC-enabled locations.
	ListCollectedNFC(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityCollectedLocation, error)

	// Complete ends the activity atomically. It returns ErrActivityAlreadyEnded
	// when another call already set the end time.
	Complete(ctx context.Context, completion domain.ActivityCompletion) (*domain.Activity, error)

	// CollectNFC records an NFC collection atomically and recomputes the
	// activity's coin total.
	CollectNFC(ctx context.Context, activityID, userID, locationID uuid.UUID) (*domain.NFCCollection, error)

	List(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter, page domain.Page) ([]domain.ActivitySummary, int, error)

	// SumCoinsByUser totals coins across all of the user's activities.
	SumCoinsByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
