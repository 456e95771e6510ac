package repository

import "errors"

var (
	// ErrNotFound is returned when a single-row lookup matches nothing.
	ErrNotFound = errors.New("record not found")

	// ErrActivityAlreadyEnded is returned when the conditional end update
	// finds the activity already ended.
	ErrActivityAlreadyEnded = errors.New("activity already ended")

	// ErrDuplicateNFCID is returned when a unique nfc_id constraint is hit.
	ErrDuplicateNFCID = errors.New("nfc id already exists")
)
