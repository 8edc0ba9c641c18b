package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

// Cache holds the country catalog in memory, both as a lookup index and as
// pre-serialized JSON ready to serve.
type Cache struct {
	mu        sync.RWMutex
	countries []model.Country
	data      []byte
	byName    map[string]int
	byID      map[string]int
	source    model.CatalogSource
	updatedAt time.Time
}

func New() *Cache {
	return &Cache{}
}

// Set replaces the catalog. The slice is copied.
func (c *Cache) Set(countries []model.Country, source model.CatalogSource) error {
	list := make([]model.Country, len(countries))
	copy(list, countries)

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serialize catalog: %w", err)
	}

	byName := make(map[string]int, len(list))
	byID := make(map[string]int, len(list))
	for i, ct := range list {
		byName[strings.ToLower(ct.Name)] = i
		if ct.ID != "" {
			byID[strings.ToUpper(ct.ID)] = i
		}
	}

	c.mu.Lock()
	c.countries = list
	c.data = data
	c.byName = byName
	c.byID = byID
	c.source = source
	c.updatedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// JSON returns the serialized catalog, or nil if empty.
func (c *Cache) JSON() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil
	}
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Len returns the number of cached countries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.countries)
}

// ByName looks a country up by name, case-insensitively.
func (c *Cache) ByName(name string) (model.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Country{}, false
	}
	return c.countries[i], true
}

// ByID looks a country up by its three-letter code.
func (c *Cache) ByID(id string) (model.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return model.Country{}, false
	}
	return c.countries[i], true
}

// Source reports whether the catalog came from the live API or the fallback.
func (c *Cache) Source() model.CatalogSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// UpdatedAt returns the last time the cache was updated.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
