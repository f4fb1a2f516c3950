package seatmap

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cinebook/internal/shared/apperrors"
	"cinebook/internal/shared/config"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	store   map[string][]byte
	setTTLs map[string]time.Duration
	getErr  error
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		store:   make(map[string][]byte),
		setTTLs: make(map[string]time.Duration),
	}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	data, ok := f.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	f.setTTLs[key] = ttl
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.store, key)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (f *fakeCache) Exists(ctx context.Context, key string) bool            { return false }
func (f *fakeCache) Ping(ctx context.Context) error                         { return nil }

func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	return errors.New("not used")
}

type fakeShowRepo struct {
	show      *shows.ShowDetails
	confirmed []string
}

func (f *fakeShowRepo) GetShowDetails(ctx context.Context, showID string) (*shows.ShowDetails, error) {
	return f.show, nil
}

func (f *fakeShowRepo) ConfirmedSeatsForShow(ctx context.Context, showID string) ([]string, error) {
	return f.confirmed, nil
}

type fakeLockLister struct {
	locked []string
	err    error
}

func (f *fakeLockLister) ListLockedSeats(ctx context.Context, showID string) ([]string, error) {
	return f.locked, f.err
}

func testShow() *shows.ShowDetails {
	return &shows.ShowDetails{
		ShowID:         "show-1",
		StartTime:      time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
		MovieTitle:     "Interstellar",
		TheatreName:    "Galaxy Cinema",
		TheatreRows:    3,
		SeatsPerRow:    4,
		PremiumFromRow: "C",
		BlockedSeats:   shows.SeatList{"C3"},
	}
}

func bookingConfig() config.BookingConfig {
	return config.BookingConfig{SeatmapCacheTTL: 10 * time.Second}
}

func seatStatus(t *testing.T, sm *Seatmap, seatID string) string {
	t.Helper()
	for _, row := range sm.Rows {
		for _, seat := range row.Seats {
			if seat.SeatID == seatID {
				return seat.Status
			}
		}
	}
	t.Fatalf("seat %s not found in seatmap", seatID)
	return ""
}

func TestGetSeatmap(t *testing.T) {
	t.Run("builds the projection from store and locks", func(t *testing.T) {
		cacheSvc := newFakeCache()
		repo := &fakeShowRepo{show: testShow(), confirmed: []string{"A1"}}
		locks := &fakeLockLister{locked: []string{"B2"}}
		svc := NewService(repo, locks, cacheSvc, bookingConfig())

		sm, err := svc.GetSeatmap(context.Background(), "show-1")
		require.NoError(t, err)

		require.Len(t, sm.Rows, 3)
		assert.Equal(t, "A", sm.Rows[0].Row)
		require.Len(t, sm.Rows[0].Seats, 4)

		assert.Equal(t, SeatStatusUnavailable, seatStatus(t, sm, "A1")) // confirmed
		assert.Equal(t, SeatStatusLocked, seatStatus(t, sm, "B2"))      // held
		assert.Equal(t, SeatStatusUnavailable, seatStatus(t, sm, "C3")) // blocked
		assert.Equal(t, SeatStatusAvailable, seatStatus(t, sm, "A2"))

		// 12 seats minus one confirmed, one locked, one blocked
		assert.Equal(t, 9, sm.Available)

		// Flat collections distinguish booked/blocked from held
		assert.Equal(t, []string{"A1", "C3"}, sm.UnavailableSeatIDs)
		assert.Equal(t, []string{"B2"}, sm.HeldSeatIDs)

		// Rows C and up are premium
		assert.Equal(t, SeatTypeRegular, sm.Rows[0].Seats[0].Type)
		assert.Equal(t, SeatTypeRegular, sm.Rows[1].Seats[0].Type)
		assert.Equal(t, SeatTypePremium, sm.Rows[2].Seats[0].Type)

		// Projection was cached with the configured TTL
		assert.Equal(t, 10*time.Second, cacheSvc.setTTLs["seatmap:show-1"])
	})

	t.Run("serves the cached projection without hitting the store", func(t *testing.T) {
		cacheSvc := newFakeCache()
		repo := &fakeShowRepo{show: testShow()}
		svc := NewService(repo, &fakeLockLister{}, cacheSvc, bookingConfig())

		first, err := svc.GetSeatmap(context.Background(), "show-1")
		require.NoError(t, err)

		// Store now disagrees with the cache; the cached view wins until TTL
		repo.confirmed = []string{"A2"}
		second, err := svc.GetSeatmap(context.Background(), "show-1")
		require.NoError(t, err)

		assert.Equal(t, first.Available, second.Available)
		assert.Equal(t, SeatStatusAvailable, seatStatus(t, second, "A2"))
	})

	t.Run("unknown show", func(t *testing.T) {
		svc := NewService(&fakeShowRepo{}, &fakeLockLister{}, newFakeCache(), bookingConfig())

		_, err := svc.GetSeatmap(context.Background(), "show-x")
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Equal(t, "Show not found", apperrors.Message(err))
	})

	t.Run("degrades when the lock scan fails", func(t *testing.T) {
		locks := &fakeLockLister{err: errors.New("redis down")}
		svc := NewService(&fakeShowRepo{show: testShow()}, locks, newFakeCache(), bookingConfig())

		sm, err := svc.GetSeatmap(context.Background(), "show-1")
		require.NoError(t, err)
		assert.Equal(t, 11, sm.Available) // only the blocked seat is gone
		assert.Empty(t, sm.HeldSeatIDs)
	})
}

func TestInvalidate(t *testing.T) {
	cacheSvc := newFakeCache()
	svc := NewService(&fakeShowRepo{show: testShow()}, &fakeLockLister{}, cacheSvc, bookingConfig())

	_, err := svc.GetSeatmap(context.Background(), "show-1")
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(context.Background(), "show-1"))
	assert.Equal(t, []string{"seatmap:show-1"}, cacheSvc.deleted)

	// Next read rebuilds from the store
	_, ok := cacheSvc.store["seatmap:show-1"]
	assert.False(t, ok)
}
