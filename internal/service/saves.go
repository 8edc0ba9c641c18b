package service

import (
	"context"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

// SaveStore is the persistence the saved-country list needs.
type SaveStore interface {
	SaveCountry(ctx context.Context, countryName string) (bool, error)
	SavedCountries(ctx context.Context) ([]model.SavedCountry, error)
}

// SaveResult reports the outcome of SaveCountry.
type SaveResult struct {
	AlreadySaved bool `json:"alreadySaved"`
}

// Saves manages the set of saved countries.
type Saves struct {
	store SaveStore
}

func NewSaves(store SaveStore) *Saves {
	return &Saves{store: store}
}

// SaveCountry adds a country to the saved set. Saving a country twice is
// not an error; the second call reports AlreadySaved.
func (s *Saves) SaveCountry(ctx context.Context, countryName string) (SaveResult, error) {
	key, err := countryKey(countryName)
	if err != nil {
		return SaveResult{}, err
	}
	inserted, err := s.store.SaveCountry(ctx, key)
	if err != nil {
		return SaveResult{}, unavailable("save country", err)
	}
	return SaveResult{AlreadySaved: !inserted}, nil
}

// ListSaved returns every saved country in the order it was saved.
func (s *Saves) ListSaved(ctx context.Context) ([]model.SavedCountry, error) {
	saved, err := s.store.SavedCountries(ctx)
	if err != nil {
		return nil, unavailable("list saved", err)
	}
	return saved, nil
}
