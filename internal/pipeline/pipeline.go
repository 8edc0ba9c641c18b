package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/backyonatan-alt/atlas/backend/internal/cache"
	"github.com/backyonatan-alt/atlas/backend/internal/fetcher"
	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

// CountrySource fetches the live catalog.
type CountrySource interface {
	FetchCountries(ctx context.Context) ([]model.Country, error)
}

// Pipeline orchestrates: fetch -> fallback -> cache.
type Pipeline struct {
	source   CountrySource
	cache    *cache.Cache
	fallback func() []model.Country
}

func New(source CountrySource, cache *cache.Cache) *Pipeline {
	return &Pipeline{source: source, cache: cache, fallback: fetcher.Fallback}
}

// Run refreshes the cached catalog. When the fetch fails, a previously
// cached catalog is kept; with nothing cached the bundled fallback is
// installed. The fetch error is still returned so the caller can log it.
func (p *Pipeline) Run(ctx context.Context) error {
	slog.Info("catalog refresh starting")

	countries, fetchErr := p.source.FetchCountries(ctx)
	if fetchErr == nil {
		if err := p.cache.Set(countries, model.SourceLive); err != nil {
			return err
		}
		slog.Info("catalog refresh complete", "source", model.SourceLive, "countries", len(countries))
		return nil
	}

	if p.cache.Len() > 0 {
		slog.Warn("catalog fetch failed, keeping cached catalog",
			"error", fetchErr, "source", p.cache.Source(), "countries", p.cache.Len())
		return fmt.Errorf("refresh catalog: %w", fetchErr)
	}

	fallback := p.fallback()
	if err := p.cache.Set(fallback, model.SourceFallback); err != nil {
		return err
	}
	slog.Warn("catalog fetch failed, using fallback data", "error", fetchErr, "countries", len(fallback))
	return fmt.Errorf("refresh catalog: %w", fetchErr)
}
