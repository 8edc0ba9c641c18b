package service

import (
	"context"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

// ViewStore is the persistence the counter needs.
type ViewStore interface {
	RecordView(ctx context.Context, countryName string) (int64, error)
	ViewCounts(ctx context.Context) ([]model.ViewCounter, error)
}

// Counter records country detail page views.
type Counter struct {
	store ViewStore
}

func NewCounter(store ViewStore) *Counter {
	return &Counter{store: store}
}

// RecordView increments the view count for a country, creating it at 1 on
// first view, and returns the new count. The store performs this as a single
// upsert, so concurrent views of one country never lose an update.
func (c *Counter) RecordView(ctx context.Context, countryName string) (int64, error) {
	key, err := countryKey(countryName)
	if err != nil {
		return 0, err
	}
	count, err := c.store.RecordView(ctx, key)
	if err != nil {
		return 0, unavailable("record view", err)
	}
	return count, nil
}

// Counts returns the current count for every viewed country.
func (c *Counter) Counts(ctx context.Context) (map[string]int64, error) {
	rows, err := c.store.ViewCounts(ctx)
	if err != nil {
		return nil, unavailable("view counts", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CountryName] = r.Count
	}
	return counts, nil
}

// List returns every view counter ordered by country name.
func (c *Counter) List(ctx context.Context) ([]model.ViewCounter, error) {
	rows, err := c.store.ViewCounts(ctx)
	if err != nil {
		return nil, unavailable("view counts", err)
	}
	return rows, nil
}
