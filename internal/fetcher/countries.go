package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

const notAvailable = "N/A"

// maxCatalogBytes bounds the response body; the full catalog is about 100 KiB.
const maxCatalogBytes = 8 << 20

var errDisabled = errors.New("countries: no catalog URL configured")

// restCountry is the subset of a REST Countries v3.1 record we read.
type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	CCA3       string   `json:"cca3"`
	Population int64    `json:"population"`
	Region     string   `json:"region"`
	Capital    []string `json:"capital"`
	Flags      struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
	} `json:"flags"`
}

// FetchCountries downloads the catalog and returns it sorted by name.
func (f *Fetcher) FetchCountries(ctx context.Context) ([]model.Country, error) {
	if !f.Enabled() {
		return nil, errDisabled
	}
	slog.Info("fetching country catalog", "url", f.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("countries request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("countries request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("countries API error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("countries read body: %w", err)
	}

	var raw []restCountry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("countries parse: %w", err)
	}

	countries := make([]model.Country, 0, len(raw))
	for _, rc := range raw {
		c := normalize(rc)
		if c.Name == "" {
			continue
		}
		countries = append(countries, c)
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("countries: empty catalog")
	}
	SortByName(countries)

	slog.Info("country catalog result", "countries", len(countries))
	return countries, nil
}

func normalize(rc restCountry) model.Country {
	c := model.Country{
		ID:         strings.ToUpper(strings.TrimSpace(rc.CCA3)),
		Name:       strings.TrimSpace(rc.Name.Common),
		Population: rc.Population,
		Region:     orNA(rc.Region),
		Capital:    notAvailable,
		Flag:       rc.Flags.SVG,
	}
	if len(rc.Capital) > 0 {
		c.Capital = orNA(rc.Capital[0])
	}
	if c.Flag == "" {
		c.Flag = rc.Flags.PNG
	}
	return c
}

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notAvailable
	}
	return s
}

// SortByName orders countries by name, case-insensitively.
func SortByName(countries []model.Country) {
	sort.SliceStable(countries, func(i, j int) bool {
		return strings.ToLower(countries[i].Name) < strings.ToLower(countries[j].Name)
	})
}
