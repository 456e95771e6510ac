package testhelpers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// InsertUser creates a user row and returns its id.
func InsertUser(ctx context.Context, db *sqlx.DB, name, email string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`, id, name, email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert user %s: %w", email, err)
	}
	return id, nil
}

// InsertLocation creates a location row and returns its id. nfcID may be empty.
func InsertLocation(ctx context.Context, db *sqlx.DB, name string, lat, lon float64, nfcID string, nfcEnabled bool) (uuid.UUID, error) {
	id := uuid.New()
	var nfc *string
	if nfcID != "" {
		nfc = &nfcID
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO locations (id, name, latitude, longitude, nfc_id, is_nfc_enabled)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, name, lat, lon, nfc, nfcEnabled)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert location %s: %w", name, err)
	}
	return id, nil
}
