package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"go.uber.org/zap"
)

const locationColumns = `id, name, description, latitude, longitude, nfc_id, is_nfc_enabled, area, created_at, updated_at`

type locationRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewLocationRepository(db *DB) repository.LocationRepository {
	return &locationRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
}

func (r *locationRepository) GetByNFCID(ctx context.Context, nfcID string) (*domain.Location, error) {
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM locations WHERE nfc_id = $1`, nfcID)
}

func (r *locationRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Location, error) {
	var loc domain.Location
	err := r.db.GetContext(ctx, &loc, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get location", zap.Any("key", arg), zap.Error(err))
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &loc, nil
}

func (r *locationRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Location, error) {
	locations := make([]domain.Location, 0, len(ids))
	if len(ids) == 0 {
		return locations, nil
	}

	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ANY($1::uuid[]) ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &locations, query, uuidArray(ids)); err != nil {
		r.logger.Error("Failed to list locations by ids", zap.Int("count", len(ids)), zap.Error(err))
		return nil, fmt.Errorf("list locations by ids: %w", err)
	}
	return locations, nil
}

// filterClause renders filter as a WHERE clause (possibly empty) and its args.
func filterClause(filter domain.LocationFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if filter.BadgeID != nil {
		args = append(args, *filter.BadgeID)
		where = append(where, fmt.Sprintf(
			"id IN (SELECT location_id FROM badge_location_requirements WHERE badge_id = $%d)", len(args)))
	}
	if b := filter.Bounds; b != nil {
		args = append(args, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
		n := len(args)
		where = append(where,
			fmt.Sprintf("latitude BETWEEN $%d AND $%d", n-3, n-2),
			fmt.Sprintf("longitude BETWEEN $%d AND $%d", n-1, n))
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func (r *locationRepository) List(ctx context.Context, filter domain.LocationFilter, page *domain.Page) ([]domain.Location, error) {
	cond, args := filterClause(filter)
	query := `SELECT ` + locationColumns + ` FROM locations` + cond + " ORDER BY created_at DESC"
	if page != nil {
		args = append(args, page.Limit, page.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	locations := make([]domain.Location, 0)
	if err := r.db.SelectContext(ctx, &locations, query, args...); err != nil {
		r.logger.Error("Failed to list locations", zap.Error(err))
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) Count(ctx context.Context, filter domain.LocationFilter) (int, error) {
	cond, args := filterClause(filter)
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM locations`+cond, args...); err != nil {
		r.logger.Error("Failed to count locations", zap.Error(err))
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

func (r *locationRepository) ListRouteCollectable(ctx context.Context) ([]domain.Location, error) {
	locations := make([]domain.Location, 0)
	query := `SELECT ` + locationColumns + ` FROM locations WHERE is_nfc_enabled = FALSE`
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		r.logger.Error("Failed to list route-collectable locations", zap.Error(err))
		return nil, fmt.Errorf("list route collectable locations: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) ListMissingArea(ctx context.Context, limit int) ([]domain.Location, error) {
	locations := make([]domain.Location, 0)
	query := `SELECT ` + locationColumns + ` FROM locations WHERE area IS NULL ORDER BY created_at ASC LIMIT $1`
	if err := r.db.SelectContext(ctx, &locations, query, limit); err != nil {
		r.logger.Error("Failed to list locations missing area", zap.Error(err))
		return nil, fmt.Errorf("list locations missing area: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) NFCIDExists(ctx context.Context, nfcID string, exclude *uuid.UUID) (bool, error) {
	var exists bool
	var err error
	if exclude != nil {
		err = r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM locations WHERE nfc_id = $1 AND id <> $2)`, nfcID, *exclude)
	} else {
		err = r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM locations WHERE nfc_id = $1)`, nfcID)
	}
	if err != nil {
		return false, fmt.Errorf("check nfc id: %w", err)
	}
	return exists, nil
}

func (r *locationRepository) ListNFCIDs(ctx context.Context, prefix string) ([]string, error) {
	ids := make([]string, 0)
	if err := r.db.SelectContext(ctx, &ids,
		`SELECT nfc_id FROM locations WHERE nfc_id LIKE $1`, prefix+"%"); err != nil {
		return nil, fmt.Errorf("list nfc ids: %w", err)
	}
	return ids, nil
}

func (r *locationRepository) Create(ctx context.Context, loc *domain.Location) error {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}

	query := `
		INSERT INTO locations (id, name, description, latitude, longitude, nfc_id, is_nfc_enabled, area)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		loc.ID, loc.Name, loc.Description, loc.Latitude, loc.Longitude, loc.NFCID, loc.IsNFCEnabled, loc.Area,
	).Scan(&loc.CreatedAt, &loc.UpdatedAt)
	if isUniqueViolation(err, "locations_nfc_id_key") {
		return repository.ErrDuplicateNFCID
	}
	if err != nil {
		r.logger.Error("Failed to create location", zap.String("name", loc.Name), zap.Error(err))
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *locationRepository) Update(ctx context.Context, id uuid.UUID, patch domain.LocationPatch) (*domain.Location, error) {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.Latitude != nil {
		b.add("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		b.add("longitude", *patch.Longitude)
	}
	if patch.IsNFCEnabled != nil {
		b.add("is_nfc_enabled", *patch.IsNFCEnabled)
	}
	if patch.SetNFCID {
		b.add("nfc_id", patch.NFCID)
	}
	if patch.SetArea {
		b.add("area", patch.Area)
	}

	if b.empty() {
		return r.GetByID(ctx, id)
	}

	set, args, idPos := b.build(id)
	query := fmt.Sprintf(`UPDATE locations SET %s WHERE id = $%d RETURNING %s`, set, idPos, locationColumns)

	var loc domain.Location
	err := r.db.GetContext(ctx, &loc, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if isUniqueViolation(err, "locations_nfc_id_key") {
		return nil, repository.ErrDuplicateNFCID
	}
	if err != nil {
		r.logger.Error("Failed to update location", zap.String("location_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("update location: %w", err)
	}
	return &loc, nil
}

func (r *locationRepository) UpdateArea(ctx context.Context, id uuid.UUID, area string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE locations SET area = $2, updated_at = NOW() WHERE id = $1`, id, area)
	if err != nil {
		r.logger.Error("Failed to update location area", zap.String("location_id", id.String()), zap.Error(err))
		return fmt.Errorf("update location area: %w", err)
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete location", zap.String("location_id", id.String()), zap.Error(err))
		return fmt.Errorf("delete location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete location rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
