package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/pkg/errors"
	"github.com/location-quest/internal/pkg/validator"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

const nfcIDPrefix = "nfc-"

var (
	errLocationNotFound = errors.NotFound("Location not found")
	errDuplicateNFCID   = errors.InvalidRequest("NFC ID already exists")

	generatedNFCID = regexp.MustCompile(`^nfc-(\d+)$`)
)

type LocationUseCase struct {
	locations   repository.LocationRepository
	collections repository.CollectionRepository
	users       repository.UserRepository
	resolver    *AreaResolver
	areas       *AreaEnsurer
	logger      *zap.Logger
}

func NewLocationUseCase(
	locations repository.LocationRepository,
	collections repository.CollectionRepository,
	users repository.UserRepository,
	resolver *AreaResolver,
	areas *AreaEnsurer,
	logger *zap.Logger,
) *LocationUseCase {
	return &LocationUseCase{
		locations:   locations,
		collections: collections,
		users:       users,
		resolver:    resolver,
		areas:       areas,
		logger:      logger,
	}
}

func (uc *LocationUseCase) List(ctx context.Context, q dto.ListLocationsQuery) (*dto.LocationListResponse, error) {
	q.Normalize(defaultListPageSize)

	var filter domain.LocationFilter
	if q.Badge != "" {
		id, err := uuid.Parse(q.Badge)
		if err != nil {
			return nil, errors.InvalidRequest("Invalid badge ID format")
		}
		filter.BadgeID = &id
	}

	locations, err := uc.locations.List(ctx, filter, &domain.Page{Number: q.Page, Limit: q.Limit})
	if err != nil {
		return nil, err
	}
	total, err := uc.locations.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	uc.areas.Ensure(ctx, pointers(locations))

	resp := &dto.LocationListResponse{Count: total, Locations: make([]dto.LocationResponse, 0, len(locations))}
	for _, l := range locations {
		resp.Locations = append(resp.Locations, dto.NewLocationResponse(l))
	}
	return resp, nil
}

func (uc *LocationUseCase) Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	nfcID := nonEmpty(req.NFCID.Value)
	if nfcID != nil {
		taken, err := uc.locations.NFCIDExists(ctx, *nfcID, nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errDuplicateNFCID
		}
	}

	loc := &domain.Location{
		Name:         req.Name,
		Description:  nonEmpty(req.Description),
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		NFCID:        nfcID,
		IsNFCEnabled: req.IsNFCEnabled != nil && *req.IsNFCEnabled,
	}
	loc.Area = uc.resolver.Resolve(ctx, loc.Latitude, loc.Longitude)

	if err := uc.locations.Create(ctx, loc); err != nil {
		if stderrors.Is(err, repository.ErrDuplicateNFCID) {
			return nil, errDuplicateNFCID
		}
		return nil, fmt.Errorf("create location: %w", err)
	}

	uc.logger.Info("Location created",
		zap.String("location_id", loc.ID.String()),
		zap.Bool("has_area", loc.Area != nil))

	resp := dto.NewLocationResponse(*loc)
	return &resp, nil
}

// Update applies a partial update. The area is geocoded again only when the
// coordinates change.
func (uc *LocationUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	existing, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, mapLocationErr(err)
	}

	patch := domain.LocationPatch{
		Name:         req.Name,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsNFCEnabled: req.IsNFCEnabled,
	}

	if req.NFCID.Set {
		patch.SetNFCID = true
		patch.NFCID = nonEmpty(req.NFCID.Value)
		if patch.NFCID != nil && (existing.NFCID == nil || *existing.NFCID != *patch.NFCID) {
			taken, err := uc.locations.NFCIDExists(ctx, *patch.NFCID, &id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errDuplicateNFCID
			}
		}
	}

	lat, lon := existing.Latitude, existing.Longitude
	if req.Latitude != nil {
		lat = *req.Latitude
	}
	if req.Longitude != nil {
		lon = *req.Longitude
	}
	if lat != existing.Latitude || lon != existing.Longitude {
		patch.SetArea = true
		patch.Area = uc.resolver.Resolve(ctx, lat, lon)
	}

	loc, err := uc.locations.Update(ctx, id, patch)
	if stderrors.Is(err, repository.ErrDuplicateNFCID) {
		return nil, errDuplicateNFCID
	}
	if err != nil {
		return nil, mapLocationErr(err)
	}

	resp := dto.NewLocationResponse(*loc)
	return &resp, nil
}

func (uc *LocationUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.locations.Delete(ctx, id); err != nil {
		return mapLocationErr(err)
	}
	uc.logger.Info("Location deleted", zap.String("location_id", id.String()))
	return nil
}

// EnableNFC turns NFC on and assigns the next nfc-NNN identifier when the
// location has none.
func (uc *LocationUseCase) EnableNFC(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error) {
	existing, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, mapLocationErr(err)
	}

	enabled := true
	patch := domain.LocationPatch{IsNFCEnabled: &enabled}
	if existing.NFCID == nil {
		next, err := uc.nextNFCID(ctx)
		if err != nil {
			return nil, err
		}
		patch.NFCID = &next
		patch.SetNFCID = true
	}

	loc, err := uc.locations.Update(ctx, id, patch)
	if stderrors.Is(err, repository.ErrDuplicateNFCID) {
		return nil, errDuplicateNFCID
	}
	if err != nil {
		return nil, mapLocationErr(err)
	}

	uc.logger.Info("NFC enabled",
		zap.String("location_id", id.String()),
		zap.Stringp("nfc_id", loc.NFCID))

	resp := dto.NewLocationResponse(*loc)
	return &resp, nil
}

func (uc *LocationUseCase) nextNFCID(ctx context.Context) (string, error) {
	ids, err := uc.locations.ListNFCIDs(ctx, nfcIDPrefix)
	if err != nil {
		return "", err
	}
	return NextNFCID(ids), nil
}

// NextNFCID returns nfc-NNN numbered one past the highest generated id.
func NextNFCID(existing []string) string {
	highest := 0
	for _, id := range existing {
		m := generatedNFCID.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", nfcIDPrefix, highest+1)
}

// UserMap lists every location matching the filters with the user's
// collection state.
func (uc *LocationUseCase) UserMap(ctx context.Context, userID uuid.UUID, q dto.UserMapQuery) (*dto.UserMapResponse, error) {
	if err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}

	var filter domain.LocationFilter
	if q.Badge != "" {
		id, err := uuid.Parse(q.Badge)
		if err != nil {
			return nil, errors.InvalidRequest("Invalid badge ID format")
		}
		filter.BadgeID = &id
	}
	if q.Bounds != "" {
		minLat, minLng, maxLat, maxLng, err := validator.ParseBounds(q.Bounds)
		if err != nil {
			return nil, errors.InvalidRequest("Bounds must be in format: lat1,lng1,lat2,lng2")
		}
		filter.Bounds = &domain.BoundingBox{MinLat: minLat, MinLon: minLng, MaxLat: maxLat, MaxLon: maxLng}
	}

	locations, err := uc.locations.List(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	collections, err := uc.collections.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	collectedAt := make(map[uuid.UUID]time.Time, len(collections))
	for _, c := range collections {
		collectedAt[c.LocationID] = c.CollectedAt
	}

	uc.areas.Ensure(ctx, pointers(locations))

	resp := &dto.UserMapResponse{Locations: make([]dto.MapLocation, 0, len(locations))}
	for _, l := range locations {
		item := dto.MapLocation{LocationResponse: dto.NewLocationResponse(l)}
		if at, ok := collectedAt[l.ID]; ok {
			item.IsCollected = true
			item.CollectedAt = &at
		}
		resp.Locations = append(resp.Locations, item)
	}
	return resp, nil
}

func mapLocationErr(err error) error {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errLocationNotFound
	}
	return err
}

func pointers(locations []domain.Location) []*domain.Location {
	out := make([]*domain.Location, len(locations))
	for i := range locations {
		out[i] = &locations[i]
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
