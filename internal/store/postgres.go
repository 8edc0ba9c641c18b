package store

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	name: "postgres",
	schema: `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT NOT NULL,
			country_name  TEXT NOT NULL,
			email         TEXT NOT NULL,
			bio           TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at DESC);

		CREATE TABLE IF NOT EXISTS country_counts (
			country_name  TEXT PRIMARY KEY,
			count         BIGINT NOT NULL DEFAULT 0 CHECK (count >= 0)
		);

		CREATE TABLE IF NOT EXISTS saved_countries (
			id            BIGSERIAL PRIMARY KEY,
			country_name  TEXT NOT NULL UNIQUE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`,
	recordView: `
		INSERT INTO country_counts (country_name, count)
		VALUES ($1, 1)
		ON CONFLICT (country_name)
		DO UPDATE SET count = country_counts.count + 1
		RETURNING count`,
	viewCounts: "SELECT country_name, count FROM country_counts ORDER BY country_name",
	saveCountry: `
		INSERT INTO saved_countries (country_name, created_at)
		VALUES ($1, $2)
		ON CONFLICT (country_name) DO NOTHING`,
	savedList: "SELECT id, country_name, created_at FROM saved_countries ORDER BY id ASC",
	insertProfile: `
		INSERT INTO users (name, country_name, email, bio, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
	latestProfile: "SELECT id, name, country_name, email, bio, created_at FROM users ORDER BY id DESC LIMIT 1",
	profiles:      "SELECT id, name, country_name, email, bio, created_at FROM users ORDER BY id DESC",
}

// NewPostgres wraps an open lib/pq connection pool.
func NewPostgres(db *sql.DB, queryTimeout time.Duration) *SQL {
	return &SQL{db: db, d: postgresDialect, timeout: queryTimeout}
}
