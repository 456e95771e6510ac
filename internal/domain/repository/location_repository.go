package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
)

type LocationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	GetByNFCID(ctx context.Context, nfcID string) (*domain.Location, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Location, error)
	List(ctx context.Context, filter domain.LocationFilter, page *domain.Page) ([]domain.Location, error)
	Count(ctx context.Context, filter domain.LocationFilter) (int, error)

	// ListRouteCollectable returns locations that can be collected by walking
	// past them, i.e. those without NFC enabled.
	ListRouteCollectable(ctx context.Context) ([]domain.Location, error)

	// ListMissingArea returns up to limit locations whose area is still null.
	ListMissingArea(ctx context.Context, limit int) ([]domain.Location, error)

	// NFCIDExists reports whether nfcID is taken by a location other than exclude.
	NFCIDExists(ctx context.Context, nfcID string, exclude *uuid.UUID) (bool, error)
	ListNFCIDs(ctx context.Context, prefix string) ([]string, error)

	Create(ctx context.Context, location *domain.Location) error
	Update(ctx context.Context, id uuid.UUID, patch domain.LocationPatch) (*domain.Location, error)
	UpdateArea(ctx context.Context, id uuid.UUID, area string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
