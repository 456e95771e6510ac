package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/pkg/errors"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

var errBadgeNotFound = errors.NotFound("Badge not found")

// unknownLocationName labels a requirement whose location row is gone.
const unknownLocationName = "Unknown location"

type BadgeUseCase struct {
	badges      repository.BadgeRepository
	userBadges  repository.UserBadgeRepository
	locations   repository.LocationRepository
	collections repository.CollectionRepository
	users       repository.UserRepository
	logger      *zap.Logger
}

func NewBadgeUseCase(
	badges repository.BadgeRepository,
	userBadges repository.UserBadgeRepository,
	locations repository.LocationRepository,
	collections repository.CollectionRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *BadgeUseCase {
	return &BadgeUseCase{
		badges:      badges,
		userBadges:  userBadges,
		locations:   locations,
		collections: collections,
		users:       users,
		logger:      logger,
	}
}

func (uc *BadgeUseCase) List(ctx context.Context, q dto.ListBadgesQuery) (*dto.BadgeListResponse, error) {
	q.Normalize(defaultListPageSize)
	search := strings.TrimSpace(q.Search)

	badges, err := uc.badges.List(ctx, search, &domain.Page{Number: q.Page, Limit: q.Limit})
	if err != nil {
		return nil, err
	}
	total, err := uc.badges.Count(ctx, search)
	if err != nil {
		return nil, err
	}

	byID, err := uc.requiredLocations(ctx, badges...)
	if err != nil {
		return nil, err
	}

	resp := &dto.BadgeListResponse{Count: total, Badges: make([]dto.BadgeResponse, 0, len(badges))}
	for i := range badges {
		resp.Badges = append(resp.Badges, badgeResponse(&badges[i], byID))
	}
	return resp, nil
}

func (uc *BadgeUseCase) Create(ctx context.Context, req dto.CreateBadgeRequest) (*dto.BadgeResponse, error) {
	ids := parseLocationIDs(req.RequiredLocationIDs)
	byID, err := uc.assertLocationsExist(ctx, ids)
	if err != nil {
		return nil, err
	}

	badge := &domain.Badge{
		Name:                req.Name,
		Description:         req.Description,
		ImageURL:            req.ImageURL.Value,
		Color:               req.Color.Value,
		RequiredLocationIDs: ids,
	}
	if err := uc.badges.Create(ctx, badge); err != nil {
		return nil, fmt.Errorf("create badge: %w", err)
	}

	uc.logger.Info("Badge created",
		zap.String("badge_id", badge.ID.String()),
		zap.Int("required_locations", len(ids)))

	resp := badgeResponse(badge, byID)
	return &resp, nil
}

func (uc *BadgeUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBadgeRequest) (*dto.BadgeResponse, error) {
	if _, err := uc.badges.GetByID(ctx, id); err != nil {
		return nil, mapBadgeErr(err)
	}

	patch := domain.BadgePatch{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL.Value,
		SetImageURL: req.ImageURL.Set,
		Color:       req.Color.Value,
		SetColor:    req.Color.Set,
	}
	if req.RequiredLocationIDs != nil {
		patch.RequiredLocationIDs = parseLocationIDs(req.RequiredLocationIDs)
		if _, err := uc.assertLocationsExist(ctx, patch.RequiredLocationIDs); err != nil {
			return nil, err
		}
	}

	badge, err := uc.badges.Update(ctx, id, patch)
	if err != nil {
		return nil, mapBadgeErr(err)
	}

	byID, err := uc.requiredLocations(ctx, *badge)
	if err != nil {
		return nil, err
	}
	resp := badgeResponse(badge, byID)
	return &resp, nil
}

func (uc *BadgeUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.badges.Delete(ctx, id); err != nil {
		return mapBadgeErr(err)
	}
	uc.logger.Info("Badge deleted", zap.String("badge_id", id.String()))
	return nil
}

// UserBadges reports fresh progress for every badge, oldest first. The
// status filter narrows the list but not the counters.
func (uc *BadgeUseCase) UserBadges(ctx context.Context, userID uuid.UUID, q dto.UserBadgesQuery) (*dto.UserBadgesResponse, error) {
	if err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}

	badges, err := uc.badges.List(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(badges, func(i, j int) bool {
		return badges[i].CreatedAt.Before(badges[j].CreatedAt)
	})

	collected, err := uc.collectedAt(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := uc.unlockedAt(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID, err := uc.requiredLocations(ctx, badges...)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserBadgesResponse{TotalBadges: len(badges), Badges: make([]dto.UserBadgeSummary, 0, len(badges))}
	for i := range badges {
		summary := userBadgeSummary(&badges[i], byID, collected, unlocked)
		switch summary.Status {
		case domain.BadgeCollected:
			resp.CollectedCount++
		case domain.BadgeInProgress:
			resp.InProgressCount++
		default:
			resp.LockedCount++
		}
		if q.Status == "" || string(summary.Status) == q.Status {
			resp.Badges = append(resp.Badges, summary)
		}
	}
	return resp, nil
}

func (uc *BadgeUseCase) UserBadgeDetail(ctx context.Context, userID, badgeID uuid.UUID) (*dto.UserBadgeDetailResponse, error) {
	if err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}
	badge, err := uc.badges.GetByID(ctx, badgeID)
	if err != nil {
		return nil, mapBadgeErr(err)
	}

	collected, err := uc.collectedAt(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := uc.unlockedAt(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID, err := uc.requiredLocations(ctx, *badge)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserBadgeDetailResponse{
		UserBadgeSummary:  userBadgeSummary(badge, byID, collected, unlocked),
		RequiredLocations: make([]dto.RequiredLocation, 0, len(badge.RequiredLocationIDs)),
	}
	for _, id := range badge.RequiredLocationIDs {
		rl := dto.RequiredLocation{LocationID: id, Name: unknownLocationName}
		if loc, ok := byID[id]; ok {
			rl.Name = loc.Name
			rl.Latitude = loc.Latitude
			rl.Longitude = loc.Longitude
			rl.Area = loc.Area
		}
		if at, ok := collected[id]; ok {
			rl.IsCollected = true
			rl.CollectedAt = &at
		}
		resp.RequiredLocations = append(resp.RequiredLocations, rl)
	}
	return resp, nil
}

// assertLocationsExist loads ids and fails with the list of unknown ones.
func (uc *BadgeUseCase) assertLocationsExist(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Location, error) {
	found, err := uc.locations.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Location, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, errors.InvalidRequest("Some locations do not exist: " + strings.Join(missing, ", "))
	}
	return byID, nil
}

// requiredLocations loads every location referenced by the badges.
func (uc *BadgeUseCase) requiredLocations(ctx context.Context, badges ...domain.Badge) (map[uuid.UUID]domain.Location, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, b := range badges {
		for _, id := range b.RequiredLocationIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	byID := make(map[uuid.UUID]domain.Location, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	found, err := uc.locations.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range found {
		byID[l.ID] = l
	}
	return byID, nil
}

func (uc *BadgeUseCase) collectedAt(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]time.Time, error) {
	rows, err := uc.collections.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]time.Time, len(rows))
	for _, c := range rows {
		out[c.LocationID] = c.CollectedAt
	}
	return out, nil
}

func (uc *BadgeUseCase) unlockedAt(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*time.Time, error) {
	rows, err := uc.userBadges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*time.Time, len(rows))
	for _, ub := range rows {
		out[ub.BadgeID] = ub.UnlockedAt
	}
	return out, nil
}

func badgeArea(b *domain.Badge, byID map[uuid.UUID]domain.Location) *string {
	locs := make([]domain.Location, 0, len(b.RequiredLocationIDs))
	for _, id := range b.RequiredLocationIDs {
		if l, ok := byID[id]; ok {
			locs = append(locs, l)
		}
	}
	return domain.SharedArea(locs)
}

func badgeResponse(b *domain.Badge, byID map[uuid.UUID]domain.Location) dto.BadgeResponse {
	ids := b.RequiredLocationIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return dto.BadgeResponse{
		ID:                  b.ID,
		Name:                b.Name,
		Description:         b.Description,
		ImageURL:            b.ImageURL,
		Color:               b.Color,
		Area:                badgeArea(b, byID),
		TotalLocations:      len(ids),
		RequiredLocationIDs: ids,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func userBadgeSummary(
	b *domain.Badge,
	byID map[uuid.UUID]domain.Location,
	collected map[uuid.UUID]time.Time,
	unlocked map[uuid.UUID]*time.Time,
) dto.UserBadgeSummary {
	progress := domain.ComputeProgress(b.RequiredLocationIDs, collected)
	return dto.UserBadgeSummary{
		BadgeID:        b.ID,
		Name:           b.Name,
		Description:    b.Description,
		ImageURL:       b.ImageURL,
		Color:          b.Color,
		Area:           badgeArea(b, byID),
		TotalLocations: len(b.RequiredLocationIDs),
		Status:         progress.Status(),
		UnlockedAt:     unlocked[b.ID],
		Progress:       progress,
	}
}

// parseLocationIDs parses validated UUID strings, dropping duplicates.
func parseLocationIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func mapBadgeErr(err error) error {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errBadgeNotFound
	}
	return err
}
