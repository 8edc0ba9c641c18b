package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backyonatan-alt/atlas/backend/internal/config"
)

const restPayload = `[
  {"name":{"common":"Japan","official":"Japan"},"cca3":"JPN","population":125836021,"region":"Asia","capital":["Tokyo"],"flags":{"png":"https://flagcdn.com/w320/jp.png","svg":"https://flagcdn.com/jp.svg"}},
  {"name":{"common":"Antarctica"},"cca3":"ATA","population":1000,"region":"Antarctic","capital":[],"flags":{"png":"https://flagcdn.com/w320/aq.png"}},
  {"name":{"common":"åland Islands"},"cca3":"ALA","population":29458,"region":"","capital":["Mariehamn"],"flags":{"svg":"https://flagcdn.com/ax.svg"}},
  {"name":{"common":""},"cca3":"XXX"}
]`

func newTestFetcher(t *testing.T, h http.HandlerFunc) *Fetcher {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	cfg := config.Defaults()
	cfg.Catalog.URL = ts.URL + "/v3.1/all"
	return New(cfg)
}

func TestFetchCountries(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/all", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(restPayload))
	})

	countries, err := f.FetchCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 3, "entries without a name are dropped")

	// Sorted by name, case-insensitively.
	assert.Equal(t, "åland Islands", countries[2].Name)
	assert.Equal(t, "Antarctica", countries[0].Name)
	assert.Equal(t, "Japan", countries[1].Name)

	jp := countries[1]
	assert.Equal(t, "JPN", jp.ID)
	assert.Equal(t, "Tokyo", jp.Capital)
	assert.Equal(t, "Asia", jp.Region)
	assert.EqualValues(t, 125836021, jp.Population)
	assert.Equal(t, "https://flagcdn.com/jp.svg", jp.Flag)

	aq := countries[0]
	assert.Equal(t, "N/A", aq.Capital)
	assert.Equal(t, "https://flagcdn.com/w320/aq.png", aq.Flag, "png used when svg is missing")

	assert.Equal(t, "N/A", countries[2].Region)
}

func TestFetchCountries_HTTPError(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	_, err := f.FetchCountries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchCountries_BadJSON(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":404}`))
	})

	_, err := f.FetchCountries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "countries parse")
}

func TestFetchCountries_Empty(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := f.FetchCountries(context.Background())
	require.Error(t, err)
}

func TestFetchCountries_Disabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Catalog.URL = ""
	f := New(cfg)

	assert.False(t, f.Enabled())
	_, err := f.FetchCountries(context.Background())
	require.ErrorIs(t, err, errDisabled)
}

func TestFetchCountries_ContextCancelled(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(restPayload))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchCountries(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFallback(t *testing.T) {
	countries := Fallback()
	require.NotEmpty(t, countries)

	seen := map[string]bool{}
	for i, c := range countries {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Capital)
		assert.False(t, seen[c.Name], "duplicate name %s", c.Name)
		seen[c.Name] = true
		if i > 0 {
			assert.LessOrEqual(t, countries[i-1].Name, c.Name)
		}
	}
	assert.True(t, seen["Japan"])
	assert.True(t, seen["France"])

	// Callers get independent slices.
	countries[0].Name = "changed"
	assert.NotEqual(t, "changed", Fallback()[0].Name)
}
