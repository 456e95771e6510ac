package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"go.uber.org/zap"
)

const activityColumns = `id, user_id, start_time, end_time, distance, duration, average_speed, total_coins, created_at, updated_at`

const collectedSelect = `
	SELECT
		acl.activity_id, acl.location_id, acl.collected_at, acl.coins_earned,
		l.id             AS "location.id",
		l.name           AS "location.name",
		l.description    AS "location.description",
		l.latitude       AS "location.latitude",
		l.longitude      AS "location.longitude",
		l.nfc_id         AS "location.nfc_id",
		l.is_nfc_enabled AS "location.is_nfc_enabled",
		l.area           AS "location.area",
		l.created_at     AS "location.created_at",
		l.updated_at     AS "location.updated_at"
	FROM activity_collected_locations acl
	JOIN locations l ON l.id = acl.location_id
	WHERE acl.activity_id = $1`

type activityRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewActivityRepository(db *DB) repository.ActivityRepository {
	return &activityRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity, first domain.TrackPoint) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO activities (id, user_id, start_time) VALUES ($1, $2, $3)
			 RETURNING total_coins, created_at, updated_at`,
			a.ID, a.UserID, a.StartTime,
		).Scan(&a.TotalCoins, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}

		first.ActivityID = a.ID
		return insertTrackPoints(ctx, tx, []domain.TrackPoint{first})
	})
	if err != nil {
		r.logger.Error("Failed to create activity", zap.String("user_id", a.UserID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var a domain.Activity
	err := r.db.GetContext(ctx, &a, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get activity", zap.String("activity_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return &a, nil
}

func (r *activityRepository) AddTrackPoints(ctx context.Context, activityID uuid.UUID, points []domain.TrackPoint) error {
	if len(points) == 0 {
		return nil
	}
	for i := range points {
		points[i].ActivityID = activityID
	}
	if err := insertTrackPoints(ctx, r.db, points); err != nil {
		r.logger.Error("Failed to add track points",
			zap.String("activity_id", activityID.String()),
			zap.Int("count", len(points)),
			zap.Error(err))
		return err
	}
	return nil
}

func insertTrackPoints(ctx context.Context, ext sqlx.ExtContext, points []domain.TrackPoint) error {
	query := `
		INSERT INTO activity_track_points (activity_id, latitude, longitude, "timestamp", accuracy)
		VALUES (:activity_id, :latitude, :longitude, :timestamp, :accuracy)
	`
	if _, err := sqlx.NamedExecContext(ctx, ext, query, points); err != nil {
		return fmt.Errorf("insert track points: %w", err)
	}
	return nil
}

func (r *activityRepository) CountTrackPoints(ctx context.Context, activityID uuid.UUID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM activity_track_points WHERE activity_id = $1`, activityID); err != nil {
		return 0, fmt.Errorf("count track points: %w", err)
	}
	return n, nil
}

func (r *activityRepository) ListTrackPoints(ctx context.Context, activityID uuid.UUID) ([]domain.TrackPoint, error) {
	points := make([]domain.TrackPoint, 0)
	query := `
		SELECT id, activity_id, latitude, longitude, "timestamp", accuracy
		FROM activity_track_points
		WHERE activity_id = $1
		ORDER BY "timestamp" ASC, id ASC
	`
	if err := r.db.SelectContext(ctx, &points, query, activityID); err != nil {
		r.logger.Error("Failed to list track points", zap.String("activity_id", activityID.String()), zap.Error(err))
		return nil, fmt.Errorf("list track points: %w", err)
	}
	return points, nil
}

func (r *activityRepository) ListCollected(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityCollectedLocation, error) {
	return r.listCollected(ctx, collectedSelect+` ORDER BY acl.collected_at ASC`, activityID)
}

func (r *activityRepository) ListCollectedNFC(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityCollectedLocation, error) {
	return r.listCollected(ctx, collectedSelect+` AND l.is_nfc_enabled = TRUE ORDER BY acl.collected_at ASC`, activityID)
}

func (r *activityRepository) listCollected(ctx context.Context, query string, activityID uuid.UUID) ([]domain.ActivityCollectedLocation, error) {
	collected := make([]domain.ActivityCollectedLocation, 0)
	if err := r.db.SelectContext(ctx, &collected, query, activityID); err != nil {
		r.logger.Error("Failed to list collected locations", zap.String("activity_id", activityID.String()), zap.Error(err))
		return nil, fmt.Errorf("list collected locations: %w", err)
	}
	return collected, nil
}

func (r *activityRepository) Complete(ctx context.Context, c domain.ActivityCompletion) (*domain.Activity, error) {
	var ended domain.Activity

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Only the first concurrent end call can flip end_time from NULL.
		res, err := tx.ExecContext(ctx, `
			UPDATE activities
			SET end_time = $2, distance = $3, duration = $4, average_speed = $5, updated_at = NOW()
			WHERE id = $1 AND end_time IS NULL`,
			c.ActivityID, c.EndTime, c.Distance, c.Duration, c.AverageSpeed)
		if err != nil {
			return fmt.Errorf("end activity: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("end activity rows affected: %w", err)
		}
		if n == 0 {
			return repository.ErrActivityAlreadyEnded
		}

		end := c.EndPoint
		end.ActivityID = c.ActivityID
		if err := insertTrackPoints(ctx, tx, []domain.TrackPoint{end}); err != nil {
			return err
		}

		for _, col := range c.Collected {
			if err := insertCollected(ctx, tx, c.ActivityID, col); err != nil {
				return err
			}
			if _, err := insertUserCollection(ctx, tx, c.UserID, col.LocationID, col.CollectedAt); err != nil {
				return err
			}
		}

		return refreshCoins(ctx, tx, c.ActivityID, &ended)
	})
	if err != nil {
		if !errors.Is(err, repository.ErrActivityAlreadyEnded) {
			r.logger.Error("Failed to complete activity", zap.String("activity_id", c.ActivityID.String()), zap.Error(err))
		}
		return nil, err
	}
	return &ended, nil
}

func (r *activityRepository) CollectNFC(ctx context.Context, activityID, userID, locationID uuid.UUID) (*domain.NFCCollection, error) {
	result := &domain.NFCCollection{}

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var now time.Time
		if err := tx.GetContext(ctx, &now, `SELECT NOW()`); err != nil {
			return fmt.Errorf("read clock: %w", err)
		}

		first, err := insertUserCollection(ctx, tx, userID, locationID, now)
		if err != nil {
			return err
		}
		result.IsFirstCollection = first

		added, err := insertCollectedReturning(ctx, tx, activityID, domain.ActivityCollectedLocation{
			LocationID:  locationID,
			CollectedAt: now,
			CoinsEarned: domain.CoinsPerLocation,
		})
		if err != nil {
			return err
		}
		result.AddedToActivity = added

		var activity domain.Activity
		if err := refreshCoins(ctx, tx, activityID, &activity); err != nil {
			return err
		}
		result.ActivityCoins = activity.TotalCoins
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to collect location by NFC",
			zap.String("activity_id", activityID.String()),
			zap.String("location_id", locationID.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

func insertCollected(ctx context.Context, tx *sqlx.Tx, activityID uuid.UUID, col domain.ActivityCollectedLocation) error {
	_, err := insertCollectedReturning(ctx, tx, activityID, col)
	return err
}

func insertCollectedReturning(ctx context.Context, tx *sqlx.Tx, activityID uuid.UUID, col domain.ActivityCollectedLocation) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO activity_collected_locations (activity_id, location_id, collected_at, coins_earned)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (activity_id, location_id) DO NOTHING`,
		activityID, col.LocationID, col.CollectedAt, col.CoinsEarned)
	if err != nil {
		return false, fmt.Errorf("insert activity collected location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert activity collected location rows affected: %w", err)
	}
	return n > 0, nil
}

// insertUserCollection creates the user's collection row if absent and
// reports whether it did.
func insertUserCollection(ctx context.Context, tx *sqlx.Tx, userID, locationID uuid.UUID, at time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO user_location_collections (user_id, location_id, collected_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, location_id) DO NOTHING`,
		userID, locationID, at)
	if err != nil {
		return false, fmt.Errorf("insert user collection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert user collection rows affected: %w", err)
	}
	return n > 0, nil
}

func refreshCoins(ctx context.Context, tx *sqlx.Tx, activityID uuid.UUID, dest *domain.Activity) error {
	err := tx.GetContext(ctx, dest, `
		UPDATE activities
		SET total_coins = (SELECT COUNT(*) FROM activity_collected_locations WHERE activity_id = $1),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+activityColumns, activityID)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("refresh activity coins: %w", err)
	}
	return nil
}

func (r *activityRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ActivityFilter,
	page domain.Page,
) ([]domain.ActivitySummary, int, error) {
	where := []string{"a.user_id = $1"}
	args := []interface{}{userID}
	if filter.EndFrom != nil {
		args = append(args, *filter.EndFrom)
		where = append(where, fmt.Sprintf("a.end_time >= $%d", len(args)))
	}
	if filter.EndTo != nil {
		args = append(args, *filter.EndTo)
		where = append(where, fmt.Sprintf("a.end_time <= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM activities a WHERE `+cond, args...); err != nil {
		r.logger.Error("Failed to count activities", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`
		SELECT
			a.id, a.user_id, a.start_time, a.end_time, a.distance, a.duration,
			a.average_speed, a.total_coins, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM activity_collected_locations acl WHERE acl.activity_id = a.id) AS collected_count
		FROM activities a
		WHERE %s
		ORDER BY a.start_time DESC
		LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))

	items := make([]domain.ActivitySummary, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		r.logger.Error("Failed to list activities", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	return items, total, nil
}

func (r *activityRepository) SumCoinsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total_coins), 0) FROM activities WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("sum user coins: %w", err)
	}
	return total, nil
}
