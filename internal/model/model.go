package model

import "time"

// Profile is one submission of the user profile form. Rows are append-only;
// the newest row is the current profile.
type Profile struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CountryName string    `json:"country_name"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
}

// ViewCounter is the number of times a country detail page was viewed.
type ViewCounter struct {
	CountryName string `json:"country_name"`
	Count       int64  `json:"count"`
}

// SavedCountry marks a country as saved. Details are re-hydrated from the catalog.
type SavedCountry struct {
	ID          int64     `json:"id"`
	CountryName string    `json:"country_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Country is a catalog entry served to the frontend.
type Country struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
	Capital    string `json:"capital"`
	Flag       string `json:"flag"`
}

// CatalogSource tells where the cached catalog came from.
type CatalogSource string

const (
	SourceLive     CatalogSource = "live"
	SourceFallback CatalogSource = "fallback"
)
