package seatlock

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCoordinator connects to a local Redis and skips the test when none
// is reachable, so the suite stays green on machines without Redis.
func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // keep test keys away from dev data
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return NewCoordinator(client)
}

func testShowID() string {
	return fmt.Sprintf("show-%s", uuid.NewString())
}

func TestAcquireAndConflict(t *testing.T) {
	coord := newTestCoordinator(t)
	ctx := context.Background()
	showID := testShowID()

	t.Run("acquires all seats atomically", func(t *testing.T) {
		err := coord.Acquire(ctx, showID, "user-1", "hold-1", []string{"A1", "A2", "A3"}, time.Minute)
		require.NoError(t, err)

		locked, err := coord.ListLockedSeats(ctx, showID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A1", "A2", "A3"}, locked)
	})

	t.Run("rejects overlap with another user and locks nothing", func(t *testing.T) {
		err := coord.Acquire(ctx, showID, "user-2", "hold-2", []string{"B1", "A2", "B2"}, time.Minute)
		require.Error(t, err)

		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "A2", conflict.Seat)

		// All-or-nothing: B1 and B2 must not be locked
		locked, err := coord.ListLockedSeats(ctx, showID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A1", "A2", "A3"}, locked)
	})

	t.Run("same owner re-acquire refreshes instead of conflicting", func(t *testing.T) {
		err := coord.Acquire(ctx, showID, "user-1", "hold-1b", []string{"A1", "A2"}, time.Minute)
		require.NoError(t, err)
	})
}

func TestReleaseOnlyTouchesOwnLocks(t *testing.T) {
	coord := newTestCoordinator(t)
	ctx := context.Background()
	showID := testShowID()

	require.NoError(t, coord.Acquire(ctx, showID, "user-1", "hold-1", []string{"C1", "C2"}, time.Minute))
	require.NoError(t, coord.Acquire(ctx, showID, "user-2", "hold-2", []string{"D1"}, time.Minute))

	// user-1 tries to release a foreign seat along with their own
	released, err := coord.Release(ctx, showID, "user-1", []string{"C1", "C2", "D1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"C1", "C2"}, released)

	locked, err := coord.ListLockedSeats(ctx, showID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"D1"}, locked)

	// Releasing again is a no-op
	released, err = coord.Release(ctx, showID, "user-1", []string{"C1", "C2"})
	require.NoError(t, err)
	assert.Empty(t, released)
}

func TestHoldRecordLifecycle(t *testing.T) {
	coord := newTestCoordinator(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	hold := &Hold{
		HoldID:    uuid.NewString(),
		ShowID:    testShowID(),
		UserID:    "user-1",
		SeatIDs:   []string{"A1", "A2"},
		Quantity:  2,
		Status:    HoldStatusHeld,
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}

	require.NoError(t, coord.PutHold(ctx, hold, 5*time.Minute))

	got, err := coord.GetHold(ctx, hold.HoldID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, hold.HoldID, got.HoldID)
	assert.Equal(t, hold.SeatIDs, got.SeatIDs)
	assert.Equal(t, HoldStatusHeld, got.Status)

	require.NoError(t, coord.DeleteHold(ctx, hold.HoldID))

	got, err = coord.GetHold(ctx, hold.HoldID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAcquireTTLExpires(t *testing.T) {
	coord := newTestCoordinator(t)
	ctx := context.Background()
	showID := testShowID()

	require.NoError(t, coord.Acquire(ctx, showID, "user-1", "hold-1", []string{"E1"}, time.Second))

	time.Sleep(1100 * time.Millisecond)

	locked, err := coord.ListLockedSeats(ctx, showID)
	require.NoError(t, err)
	assert.Empty(t, locked)

	// The seat is free again for anyone
	require.NoError(t, coord.Acquire(ctx, showID, "user-2", "hold-2", []string{"E1"}, time.Minute))
}

func TestHoldIsExpired(t *testing.T) {
	now := time.Now().UTC()
	hold := &Hold{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, hold.IsExpired(now))
	assert.True(t, hold.IsExpired(now.Add(time.Minute)))
	assert.True(t, hold.IsExpired(now.Add(2*time.Minute)))
}
