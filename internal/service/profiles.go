package service

import (
	"context"
	"strings"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

// ProfileStore is the persistence the profile history needs.
type ProfileStore interface {
	InsertProfile(ctx context.Context, p *model.Profile) error
	LatestProfile(ctx context.Context) (*model.Profile, error)
	Profiles(ctx context.Context) ([]model.Profile, error)
}

// ProfileInput is a profile form submission.
type ProfileInput struct {
	Name        string `json:"name"`
	CountryName string `json:"country_name"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
}

// Profiles keeps an append-only history of profile submissions. The newest
// submission is the current profile.
type Profiles struct {
	store ProfileStore
}

func NewProfiles(store ProfileStore) *Profiles {
	return &Profiles{store: store}
}

// UpsertProfile stores a new version of the profile. Earlier versions are
// never modified.
func (p *Profiles) UpsertProfile(ctx context.Context, in ProfileInput) (*model.Profile, error) {
	profile := model.Profile{
		Name:        strings.TrimSpace(in.Name),
		CountryName: strings.TrimSpace(in.CountryName),
		Email:       strings.TrimSpace(in.Email),
		Bio:         strings.TrimSpace(in.Bio),
	}

	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", profile.Name},
		{"email", profile.Email},
		{"country_name", profile.CountryName},
		{"bio", profile.Bio},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, invalid("missing required fields: %s", strings.Join(missing, ", "))
	}

	if err := p.store.InsertProfile(ctx, &profile); err != nil {
		return nil, unavailable("insert profile", err)
	}
	return &profile, nil
}

// LatestProfile returns the newest profile, or nil when none was submitted.
func (p *Profiles) LatestProfile(ctx context.Context) (*model.Profile, error) {
	profile, err := p.store.LatestProfile(ctx)
	if err != nil {
		return nil, unavailable("latest profile", err)
	}
	return profile, nil
}

// History returns every submitted profile, newest first.
func (p *Profiles) History(ctx context.Context) ([]model.Profile, error) {
	profiles, err := p.store.Profiles(ctx)
	if err != nil {
		return nil, unavailable("profile history", err)
	}
	return profiles, nil
}
