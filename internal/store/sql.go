package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/backyonatan-alt/atlas/backend/internal/model"
)

// dialect holds the statements that differ between database engines.
type dialect struct {
	name          string
	schema        string
	recordView    string
	viewCounts    string
	saveCountry   string
	savedList     string
	insertProfile string
	latestProfile string
	profiles      string
}

// SQL implements Store over database/sql. Every method issues exactly one
// statement and holds no state between calls.
type SQL struct {
	db      *sql.DB
	d       dialect
	timeout time.Duration
}

var _ Store = (*SQL)(nil)

// DB returns the underlying connection pool.
func (s *SQL) DB() *sql.DB {
	return s.db
}

// Dialect returns the engine name ("postgres" or "sqlite").
func (s *SQL) Dialect() string {
	return s.d.name
}

// Close closes the connection pool.
func (s *SQL) Close() error {
	return s.db.Close()
}

// withTimeout bounds a single statement by the configured query timeout.
func (s *SQL) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *SQL) Migrate(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.d.schema); err != nil {
		return fmt.Errorf("migrate %s schema: %w", s.d.name, err)
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *SQL) RecordView(ctx context.Context, countryName string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.db.QueryRowContext(ctx, s.d.recordView, countryName).Scan(&count); err != nil {
		return 0, fmt.Errorf("record view: %w", err)
	}
	return count, nil
}

func (s *SQL) ViewCounts(ctx context.Context) ([]model.ViewCounter, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, s.d.viewCounts)
	if err != nil {
		return nil, fmt.Errorf("query view counts: %w", err)
	}
	defer rows.Close()

	counts := []model.ViewCounter{}
	for rows.Next() {
		var c model.ViewCounter
		if err := rows.Scan(&c.CountryName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan view count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate view counts: %w", err)
	}
	return counts, nil
}

func (s *SQL) SaveCountry(ctx context.Context, countryName string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, s.d.saveCountry, countryName, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("save country: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save country rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQL) SavedCountries(ctx context.Context) ([]model.SavedCountry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, s.d.savedList)
	if err != nil {
		return nil, fmt.Errorf("query saved countries: %w", err)
	}
	defer rows.Close()

	saved := []model.SavedCountry{}
	for rows.Next() {
		var sc model.SavedCountry
		if err := rows.Scan(&sc.ID, &sc.CountryName, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved country: %w", err)
		}
		saved = append(saved, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved countries: %w", err)
	}
	return saved, nil
}

func (s *SQL) InsertProfile(ctx context.Context, p *model.Profile) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	createdAt := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, s.d.insertProfile,
		p.Name, p.CountryName, p.Email, p.Bio, createdAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	p.CreatedAt = createdAt
	return nil
}

func (s *SQL) LatestProfile(ctx context.Context) (*model.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var p model.Profile
	err := s.db.QueryRowContext(ctx, s.d.latestProfile).Scan(
		&p.ID, &p.Name, &p.CountryName, &p.Email, &p.Bio, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest profile: %w", err)
	}
	return &p, nil
}

func (s *SQL) Profiles(ctx context.Context) ([]model.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, s.d.profiles)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.CountryName, &p.Email, &p.Bio, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}
