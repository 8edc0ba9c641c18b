package fetcher

import (
	"net/http"
	"time"

	"github.com/backyonatan-alt/atlas/backend/internal/config"
)

// Fetcher holds the shared HTTP client for the country catalog API.
type Fetcher struct {
	client *http.Client
	url    string
}

func New(cfg *config.Config) *Fetcher {
	timeout := cfg.Catalog.Timeout.Duration
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		url:    cfg.Catalog.URL,
	}
}

// Enabled reports whether a live catalog URL is configured.
func (f *Fetcher) Enabled() bool {
	return f.url != ""
}
