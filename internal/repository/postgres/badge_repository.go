package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"go.uber.org/zap"
)

const badgeColumns = `id, name, description, image_url, color, created_at, updated_at`

type badgeRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewBadgeRepository(db *DB) repository.BadgeRepository {
	return &badgeRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *badgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Badge, error) {
	var b domain.Badge
	err := r.db.GetContext(ctx, &b, `SELECT `+badgeColumns+` FROM badges WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get badge", zap.String("badge_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("get badge: %w", err)
	}

	badges := []domain.Badge{b}
	if err := r.loadRequirements(ctx, r.db, badges); err != nil {
		return nil, err
	}
	return &badges[0], nil
}

func searchClause(search string) (string, []interface{}) {
	if search == "" {
		return "", nil
	}
	return ` WHERE name ILIKE $1`, []interface{}{"%" + search + "%"}
}

func (r *badgeRepository) List(ctx context.Context, search string, page *domain.Page) ([]domain.Badge, error) {
	cond, args := searchClause(search)
	query := `SELECT ` + badgeColumns + ` FROM badges` + cond + ` ORDER BY created_at DESC`
	if page != nil {
		args = append(args, page.Limit, page.Offset())
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	badges := make([]domain.Badge, 0)
	if err := r.db.SelectContext(ctx, &badges, query, args...); err != nil {
		r.logger.Error("Failed to list badges", zap.String("search", search), zap.Error(err))
		return nil, fmt.Errorf("list badges: %w", err)
	}

	if err := r.loadRequirements(ctx, r.db, badges); err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) Count(ctx context.Context, search string) (int, error) {
	cond, args := searchClause(search)
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM badges`+cond, args...); err != nil {
		r.logger.Error("Failed to count badges", zap.String("search", search), zap.Error(err))
		return 0, fmt.Errorf("count badges: %w", err)
	}
	return n, nil
}

// loadRequirements fills RequiredLocationIDs for every badge with one query.
func (r *badgeRepository) loadRequirements(ctx context.Context, q sqlx.QueryerContext, badges []domain.Badge) error {
	if len(badges) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(badges))
	index := make(map[uuid.UUID]int, len(badges))
	for i := range badges {
		ids[i] = badges[i].ID
		index[badges[i].ID] = i
		badges[i].RequiredLocationIDs = make([]uuid.UUID, 0)
	}

	var rows []struct {
		BadgeID    uuid.UUID `db:"badge_id"`
		LocationID uuid.UUID `db:"location_id"`
	}
	query := `
		SELECT badge_id, location_id
		FROM badge_location_requirements
		WHERE badge_id = ANY($1::uuid[])
		ORDER BY badge_id, location_id
	`
	if err := sqlx.SelectContext(ctx, q, &rows, query, uuidArray(ids)); err != nil {
		r.logger.Error("Failed to load badge requirements", zap.Int("badges", len(badges)), zap.Error(err))
		return fmt.Errorf("load badge requirements: %w", err)
	}

	for _, row := range rows {
		i := index[row.BadgeID]
		badges[i].RequiredLocationIDs = append(badges[i].RequiredLocationIDs, row.LocationID)
	}
	return nil
}

func (r *badgeRepository) Create(ctx context.Context, b *domain.Badge) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO badges (id, name, description, image_url, color)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`,
			b.ID, b.Name, b.Description, b.ImageURL, b.Color,
		).Scan(&b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert badge: %w", err)
		}
		return replaceRequirements(ctx, tx, b.ID, b.RequiredLocationIDs)
	})
	if err != nil {
		r.logger.Error("Failed to create badge", zap.String("name", b.Name), zap.Error(err))
		return err
	}
	return nil
}

func (r *badgeRepository) Update(ctx context.Context, id uuid.UUID, patch domain.BadgePatch) (*domain.Badge, error) {
	var updated domain.Badge

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var sb setBuilder
		if patch.Name != nil {
			sb.add("name", *patch.Name)
		}
		if patch.Description != nil {
			sb.add("description", *patch.Description)
		}
		if patch.SetImageURL {
			sb.add("image_url", patch.ImageURL)
		}
		if patch.SetColor {
			sb.add("color", patch.Color)
		}

		set, args, idPos := sb.build(id)
		query := fmt.Sprintf(`UPDATE badges SET %s WHERE id = $%d RETURNING %s`, set, idPos, badgeColumns)
		err := tx.GetContext(ctx, &updated, query, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update badge: %w", err)
		}

		if patch.RequiredLocationIDs != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM badge_location_requirements WHERE badge_id = $1`, id); err != nil {
				return fmt.Errorf("clear badge requirements: %w", err)
			}
			if err := replaceRequirements(ctx, tx, id, patch.RequiredLocationIDs); err != nil {
				return err
			}
		}

		badges := []domain.Badge{updated}
		if err := r.loadRequirements(ctx, tx, badges); err != nil {
			return err
		}
		updated = badges[0]
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.logger.Error("Failed to update badge", zap.String("badge_id", id.String()), zap.Error(err))
		}
		return nil, err
	}
	return &updated, nil
}

func replaceRequirements(ctx context.Context, tx *sqlx.Tx, badgeID uuid.UUID, locationIDs []uuid.UUID) error {
	if len(locationIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO badge_location_requirements (badge_id, location_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, badgeID, uuidArray(locationIDs)); err != nil {
		return fmt.Errorf("insert badge requirements: %w", err)
	}
	return nil
}

func (r *badgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM badges WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete badge", zap.String("badge_id", id.String()), zap.Error(err))
		return fmt.Errorf("delete badge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete badge rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type userBadgeRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewUserBadgeRepository(db *DB) repository.UserBadgeRepository {
	return &userBadgeRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *userBadgeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserBadge, error) {
	badges := make([]domain.UserBadge, 0)
	query := `
		SELECT id, user_id, badge_id, status, unlocked_at, created_at, updated_at
		FROM user_badges
		WHERE user_id = $1
	`
	if err := r.db.SelectContext(ctx, &badges, query, userID); err != nil {
		r.logger.Error("Failed to list user badges", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("list user badges: %w", err)
	}
	return badges, nil
}

// SaveBatch upserts the given statuses. A stored collected row is never
// overwritten.
func (r *userBadgeRepository) SaveBatch(ctx context.Context, badges []domain.UserBadge) error {
	if len(badges) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_badges (user_id, badge_id, status, unlocked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, badge_id) DO UPDATE
		SET status = EXCLUDED.status,
		    unlocked_at = EXCLUDED.unlocked_at,
		    updated_at = NOW()
		WHERE user_badges.status <> 'collected'
	`
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare user badge upsert: %w", err)
		}
		defer stmt.Close()

		for _, b := range badges {
			if _, err := stmt.ExecContext(ctx, b.UserID, b.BadgeID, b.Status, b.UnlockedAt); err != nil {
				return fmt.Errorf("upsert user badge %s: %w", b.BadgeID, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save user badges", zap.Int("count", len(badges)), zap.Error(err))
		return err
	}
	return nil
}
