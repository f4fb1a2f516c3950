package seatlock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cinebook/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// Coordinator owns the Redis side of the booking flow: per-seat locks and
// the hold records that reference them.
type Coordinator struct {
	redis *redis.Client
}

// NewCoordinator creates a new seat lock coordinator
func NewCoordinator(redisClient *redis.Client) *Coordinator {
	return &Coordinator{
		redis: redisClient,
	}
}

// PreloadScripts loads the Lua scripts into Redis so later calls hit EVALSHA.
func (c *Coordinator) PreloadScripts(ctx context.Context) error {
	if err := acquireScript.Load(ctx, c.redis).Err(); err != nil {
		return fmt.Errorf("failed to load acquire script: %w", err)
	}
	if err := releaseScript.Load(ctx, c.redis).Err(); err != nil {
		return fmt.Errorf("failed to load release script: %w", err)
	}
	return nil
}

// Acquire atomically locks every seat in seatIDs for the given user, or none
// of them. A seat already locked by the same user gets its TTL refreshed and
// its lock value rewritten, so re-acquiring for a new hold or order is safe.
// Returns *ConflictError naming the first foreign-owned seat on conflict.
func (c *Coordinator) Acquire(ctx context.Context, showID, userID, holdID string, seatIDs []string, ttl time.Duration) error {
	keys := make([]string, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		keys = append(keys, constants.BuildSeatLockKey(showID, seatID))
	}

	args := []interface{}{
		showID,
		userID,
		holdID,
		int(ttl.Seconds()),
	}
	for _, seatID := range seatIDs {
		args = append(args, seatID)
	}

	result, err := acquireScript.Run(ctx, c.redis, keys, args...).Result()
	if err != nil {
		return fmt.Errorf("failed to execute seat acquire script: %w", err)
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from acquire script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in acquire script result")
	}

	if success == 0 {
		seat, _ := resultArray[1].(string)
		return &ConflictError{Seat: seat}
	}

	return nil
}

// Release deletes the locks for seatIDs that are owned by userID and returns
// the seats actually released. Foreign-owned and already-expired locks are
// skipped, so release is safe to call more than once.
func (c *Coordinator) Release(ctx context.Context, showID, userID string, seatIDs []string) ([]string, error) {
	keys := make([]string, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		keys = append(keys, constants.BuildSeatLockKey(showID, seatID))
	}

	args := []interface{}{userID}
	for _, seatID := range seatIDs {
		args = append(args, seatID)
	}

	result, err := releaseScript.Run(ctx, c.redis, keys, args...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to execute seat release script: %w", err)
	}

	resultArray, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format from release script")
	}

	released := make([]string, 0, len(resultArray))
	for _, v := range resultArray {
		if seat, ok := v.(string); ok {
			released = append(released, seat)
		}
	}

	return released, nil
}

// PutHold stores the hold record as JSON with the given TTL.
func (c *Coordinator) PutHold(ctx context.Context, hold *Hold, ttl time.Duration) error {
	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal hold: %w", err)
	}

	key := constants.BuildHoldKey(hold.HoldID)
	if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store hold: %w", err)
	}

	return nil
}

// GetHold fetches a hold record. Returns (nil, nil) when the key is missing,
// which callers treat as not-found-or-expired.
func (c *Coordinator) GetHold(ctx context.Context, holdID string) (*Hold, error) {
	val, err := c.redis.Get(ctx, constants.BuildHoldKey(holdID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hold: %w", err)
	}

	var hold Hold
	if err := json.Unmarshal([]byte(val), &hold); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hold: %w", err)
	}

	return &hold, nil
}

// DeleteHold removes a hold record. Seat locks are not touched.
func (c *Coordinator) DeleteHold(ctx context.Context, holdID string) error {
	if err := c.redis.Del(ctx, constants.BuildHoldKey(holdID)).Err(); err != nil {
		return fmt.Errorf("failed to delete hold: %w", err)
	}
	return nil
}

// ListLockedSeats scans the lock key space for a show and returns the locked
// seat IDs. SCAN keeps this O(locks-per-show) without blocking Redis.
func (c *Coordinator) ListLockedSeats(ctx context.Context, showID string) ([]string, error) {
	pattern := constants.BuildSeatLockPattern(showID)

	var seats []string
	iter := c.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		idx := strings.LastIndex(key, ":")
		if idx >= 0 && idx < len(key)-1 {
			seats = append(seats, key[idx+1:])
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan seat locks: %w", err)
	}

	return seats, nil
}
