package store

import (
	"context"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

// Store is the repository interface for explorer persistence.
type Store interface {
	// RecordView creates or increments the view counter for a country and
	// returns the resulting count.
	RecordView(ctx context.Context, countryName string) (int64, error)
	// ViewCounts returns every view counter, ordered by country name.
	ViewCounts(ctx context.Context) ([]model.ViewCounter, error)
	// SaveCountry inserts a saved country unless it is already present.
	// It reports whether a row was inserted.
	SaveCountry(ctx context.Context, countryName string) (bool, error)
	// SavedCountries returns saved countries in insertion order.
	SavedCountries(ctx context.Context) ([]model.SavedCountry, error)
	// InsertProfile appends a profile row and fills in its ID and CreatedAt.
	InsertProfile(ctx context.Context, p *model.Profile) error
	// LatestProfile returns the newest profile, or nil if there is none.
	LatestProfile(ctx context.Context) (*model.Profile, error)
	// Profiles returns every profile, newest first.
	Profiles(ctx context.Context) ([]model.Profile, error)
	// Migrate creates the schema if it does not exist.
	Migrate(ctx context.Context) error
	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}
