package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/backyonatan-alt/atlas/backend/internal/config"
)

// sqlitePragmas are appended to SQLite DSNs that carry no query string.
const sqlitePragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Open connects to the configured database, applies pool limits and pings it.
// The caller owns the returned handle and must Close it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*SQL, error) {
	var (
		driver string
		dsn    = cfg.URL
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		driver = "postgres"
	case config.DriverSQLite:
		driver = "sqlite"
		if !strings.Contains(dsn, "?") {
			dsn += sqlitePragmas
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		return NewSQLite(db, cfg.QueryTimeout.Duration), nil
	}
	return NewPostgres(db, cfg.QueryTimeout.Duration), nil
}
