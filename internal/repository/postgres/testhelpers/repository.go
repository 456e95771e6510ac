package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/repository/postgres"
	"go.uber.org/zap"
)

// Repositories bundles every postgres repository over one test connection.
type Repositories struct {
	DB          *postgres.DB
	Users       repository.UserRepository
	Locations   repository.LocationRepository
	Activities  repository.ActivityRepository
	Collections repository.CollectionRepository
	Badges      repository.BadgeRepository
	UserBadges  repository.UserBadgeRepository
}

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewRepositoriesForTest wires all repositories to the test database.
func NewRepositoriesForTest(db *sqlx.DB, logger *zap.Logger) *Repositories {
	pgDB := NewDBForTest(db, logger)
	return &Repositories{
		DB:          pgDB,
		Users:       postgres.NewUserRepository(pgDB),
		Locations:   postgres.NewLocationRepository(pgDB),
		Activities:  postgres.NewActivityRepository(pgDB),
		Collections: postgres.NewCollectionRepository(pgDB),
		Badges:      postgres.NewBadgeRepository(pgDB),
		UserBadges:  postgres.NewUserBadgeRepository(pgDB),
	}
}
