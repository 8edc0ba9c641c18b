package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/backyonatan-alt/atlas/backend/internal/config"
	"github.com/backyonatan-alt/atlas/backend/internal/model"
	"github.com/backyonatan-alt/atlas/backend/internal/store"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// fakeStore records calls and can be switched into a failing mode.
type fakeStore struct {
	mu       sync.Mutex
	fail     bool
	calls    int
	counts   map[string]int64
	saved    []string
	profiles []model.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}}
}

func (f *fakeStore) begin() error {
	f.calls++
	if f.fail {
		return errConnRefused
	}
	return nil
}

func (f *fakeStore) RecordView(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return 0, err
	}
	f.counts[name]++
	return f.counts[name], nil
}

func (f *fakeStore) ViewCounts(context.Context) ([]model.ViewCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	var out []model.ViewCounter
	for k, v := range f.counts {
		out = append(out, model.ViewCounter{CountryName: k, Count: v})
	}
	return out, nil
}

func (f *fakeStore) SaveCountry(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return false, err
	}
	for _, s := range f.saved {
		if s == name {
			return false, nil
		}
	}
	f.saved = append(f.saved, name)
	return true, nil
}

func (f *fakeStore) SavedCountries(context.Context) ([]model.SavedCountry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	out := make([]model.SavedCountry, len(f.saved))
	for i, s := range f.saved {
		out[i] = model.SavedCountry{ID: int64(i + 1), CountryName: s}
	}
	return out, nil
}

func (f *fakeStore) InsertProfile(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	p.ID = int64(len(f.profiles) + 1)
	f.profiles = append(f.profiles, *p)
	return nil
}

func (f *fakeStore) LatestProfile(context.Context) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	if len(f.profiles) == 0 {
		return nil, nil
	}
	p := f.profiles[len(f.profiles)-1]
	return &p, nil
}

func (f *fakeStore) Profiles(context.Context) ([]model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	out := make([]model.Profile, 0, len(f.profiles))
	for i := len(f.profiles) - 1; i >= 0; i-- {
		out = append(out, f.profiles[i])
	}
	return out, nil
}

func sqliteStore(t *testing.T) *store.SQL {
	t.Helper()
	cfg := config.Defaults().Database
	cfg.Driver = config.DriverSQLite
	cfg.URL = filepath.Join(t.TempDir(), "service.db")

	s, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

// ==================== Counter ====================

func TestRecordView_RejectsEmptyKey(t *testing.T) {
	fs := newFakeStore()
	c := NewCounter(fs)

	for _, key := range []string{"", "   ", "\t\n"} {
		_, err := c.RecordView(context.Background(), key)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, "country_name is required", err.Error())
	}
	assert.Zero(t, fs.calls, "invalid input must not reach the store")
}

func TestRecordView_TrimsKey(t *testing.T) {
	fs := newFakeStore()
	c := NewCounter(fs)

	_, err := c.RecordView(context.Background(), "  Japan ")
	require.NoError(t, err)
	n, err := c.RecordView(context.Background(), "Japan")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRecordView_StoreFailure(t *testing.T) {
	fs := newFakeStore()
	fs.fail = true
	c := NewCounter(fs)

	_, err := c.RecordView(context.Background(), "Japan")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, err, errConnRefused)
	assert.NotErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, fs.calls, "no internal retry")
}

func TestRecordView_SequentialCounts(t *testing.T) {
	c := NewCounter(sqliteStore(t))

	const n = 10
	for want := int64(1); want <= n; want++ {
		got, err := c.RecordView(context.Background(), "Brazil")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	counts, err := c.Counts(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, n, counts["Brazil"])
}

func TestRecordView_ConcurrentCounts(t *testing.T) {
	c := NewCounter(sqliteStore(t))
	const m = 25

	var (
		mu   sync.Mutex
		seen = map[int64]bool{}
		g    errgroup.Group
	)
	for i := 0; i < m; i++ {
		g.Go(func() error {
			n, err := c.RecordView(context.Background(), "Egypt")
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[n] {
				return errors.New("duplicate count returned")
			}
			seen[n] = true
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, seen, m)

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, m, list[0].Count)
}

// ==================== Saves ====================

func TestSaveCountry_Idempotent(t *testing.T) {
	s := NewSaves(sqliteStore(t))
	ctx := context.Background()

	res, err := s.SaveCountry(ctx, "Japan")
	require.NoError(t, err)
	assert.False(t, res.AlreadySaved)

	res, err = s.SaveCountry(ctx, "Japan")
	require.NoError(t, err)
	assert.True(t, res.AlreadySaved)

	saved, err := s.ListSaved(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestListSaved_InsertionOrder(t *testing.T) {
	s := NewSaves(sqliteStore(t))
	ctx := context.Background()

	_, err := s.SaveCountry(ctx, "Norway")
	require.NoError(t, err)
	_, err = s.SaveCountry(ctx, "Argentina")
	require.NoError(t, err)

	saved, err := s.ListSaved(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "Norway", saved[0].CountryName)
	assert.Equal(t, "Argentina", saved[1].CountryName)
}

func TestSaveCountry_Errors(t *testing.T) {
	fs := newFakeStore()
	s := NewSaves(fs)

	_, err := s.SaveCountry(context.Background(), " ")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, fs.calls)

	fs.fail = true
	_, err = s.SaveCountry(context.Background(), "Japan")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = s.ListSaved(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// ==================== Profiles ====================

func validInput(name, bio string) ProfileInput {
	return ProfileInput{Name: name, CountryName: "France", Email: name + "@example.com", Bio: bio}
}

func TestUpsertProfile_MissingFields(t *testing.T) {
	fs := newFakeStore()
	p := NewProfiles(fs)

	_, err := p.UpsertProfile(context.Background(), ProfileInput{Name: "Ada", Bio: "  "})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "missing required fields: email, country_name, bio", err.Error())
	assert.Zero(t, fs.calls)
}

func TestUpsertProfile_LatestWinsAndHistoryKept(t *testing.T) {
	p := NewProfiles(sqliteStore(t))
	ctx := context.Background()

	latest, err := p.LatestProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = p.UpsertProfile(ctx, validInput("ada", "first"))
	require.NoError(t, err)
	second, err := p.UpsertProfile(ctx, validInput("grace", "second"))
	require.NoError(t, err)

	latest, err = p.LatestProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "grace", latest.Name)
	assert.Equal(t, "second", latest.Bio)

	history, err := p.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[1].Bio)
}

func TestUpsertProfile_TrimsFields(t *testing.T) {
	fs := newFakeStore()
	p := NewProfiles(fs)

	got, err := p.UpsertProfile(context.Background(), ProfileInput{
		Name: " Ada ", CountryName: " France", Email: "ada@example.com ", Bio: " hi ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "France", got.CountryName)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "hi", got.Bio)
}

func TestProfiles_StoreFailure(t *testing.T) {
	fs := newFakeStore()
	fs.fail = true
	p := NewProfiles(fs)

	_, err := p.UpsertProfile(context.Background(), validInput("ada", "bio"))
	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = p.LatestProfile(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = p.History(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// ==================== End to end ====================

func TestScenario_JapanFrance(t *testing.T) {
	st := sqliteStore(t)
	counter := NewCounter(st)
	saves := NewSaves(st)
	ctx := context.Background()

	steps := []struct {
		key  string
		want int64
	}{
		{"Japan", 1},
		{"Japan", 2},
		{"France", 1},
	}
	for _, s := range steps {
		got, err := counter.RecordView(ctx, s.key)
		require.NoError(t, err)
		assert.Equal(t, s.want, got, s.key)
	}

	res, err := saves.SaveCountry(ctx, "Japan")
	require.NoError(t, err)
	assert.False(t, res.AlreadySaved)

	res, err = saves.SaveCountry(ctx, "Japan")
	require.NoError(t, err)
	assert.True(t, res.AlreadySaved)

	saved, err := saves.ListSaved(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Japan", saved[0].CountryName)

	_, err = counter.RecordView(ctx, "")
	require.ErrorIs(t, err, ErrInvalidArgument)
	counts, err := counter.Counts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, 2, "rejected input writes no row")
}
