package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/metrics"
	"go.uber.org/zap"
)

// BadgeEvaluator recomputes a user's badge statuses from their collection set.
type BadgeEvaluator struct {
	badges      repository.BadgeRepository
	userBadges  repository.UserBadgeRepository
	collections repository.CollectionRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewBadgeEvaluator(
	badges repository.BadgeRepository,
	userBadges repository.UserBadgeRepository,
	collections repository.CollectionRepository,
	logger *zap.Logger,
) *BadgeEvaluator {
	return &BadgeEvaluator{
		badges:      badges,
		userBadges:  userBadges,
		collections: collections,
		logger:      logger,
		now:         time.Now,
	}
}

// Evaluate stores the current status of every badge for userID and returns
// the badges that became collected in this call, oldest badge first.
//
// A stored collected status is never downgraded and its unlock time never
// changes.
func (e *BadgeEvaluator) Evaluate(ctx context.Context, userID uuid.UUID) ([]domain.UnlockedBadge, error) {
	badges, err := e.badges.List(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("load badges: %w", err)
	}
	collected, err := e.collections.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	stored, err := e.userBadges.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user badges: %w", err)
	}

	collectedSet := make(map[uuid.UUID]struct{}, len(collected))
	for _, c := range collected {
		collectedSet[c.LocationID] = struct{}{}
	}
	existing := make(map[uuid.UUID]domain.UserBadge, len(stored))
	for _, ub := range stored {
		existing[ub.BadgeID] = ub
	}

	sort.SliceStable(badges, func(i, j int) bool {
		return badges[i].CreatedAt.Before(badges[j].CreatedAt)
	})

	now := e.now().UTC()
	var (
		writes   []domain.UserBadge
		unlocked []domain.UnlockedBadge
	)

	for _, b := range badges {
		status := domain.ComputeProgress(b.RequiredLocationIDs, collectedSet).Status()
		prev, hasPrev := existing[b.ID]

		if hasPrev && prev.Status == domain.BadgeCollected {
			continue
		}

		row := domain.UserBadge{UserID: userID, BadgeID: b.ID, Status: status}
		if status == domain.BadgeCollected {
			unlockedAt := now
			if hasPrev && prev.UnlockedAt != nil {
				unlockedAt = *prev.UnlockedAt
			}
			row.UnlockedAt = &unlockedAt
			unlocked = append(unlocked, domain.UnlockedBadge{
				BadgeID:    b.ID,
				Name:       b.Name,
				ImageURL:   b.ImageURL,
				UnlockedAt: unlockedAt,
			})
		}

		if hasPrev && prev.Status == row.Status {
			continue
		}
		writes = append(writes, row)
	}

	if err := e.userBadges.SaveBatch(ctx, writes); err != nil {
		return nil, fmt.Errorf("save user badges: %w", err)
	}

	if len(unlocked) > 0 {
		metrics.BadgesUnlocked.Add(float64(len(unlocked)))
		e.logger.Info("Badges unlocked",
			zap.String("user_id", userID.String()),
			zap.Int("count", len(unlocked)))
	}
	return unlocked, nil
}
