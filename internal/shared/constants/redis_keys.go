package constants

import "fmt"

// Redis key layout. Seat locks and hold records are owned by the booking
// flow; seatmap keys hold the cached availability projection.
const (
	SeatLockKeyPrefix = "seat_lock"
	HoldKeyPrefix     = "hold"
	SeatmapKeyPrefix  = "seatmap"
)

// BuildSeatLockKey builds the per-seat lock key: seat_lock:<showId>:<seatId>
func BuildSeatLockKey(showID, seatID string) string {
	return fmt.Sprintf("%s:%s:%s", SeatLockKeyPrefix, showID, seatID)
}

// BuildSeatLockPattern builds the SCAN pattern for all locks of a show
func BuildSeatLockPattern(showID string) string {
	return fmt.Sprintf("%s:%s:*", SeatLockKeyPrefix, showID)
}

// BuildHoldKey builds the hold record key: hold:<holdId>
func BuildHoldKey(holdID string) string {
	return fmt.Sprintf("%s:%s", HoldKeyPrefix, holdID)
}

// BuildSeatmapKey builds the seatmap cache key: seatmap:<showId>
func BuildSeatmapKey(showID string) string {
	return fmt.Sprintf("%s:%s", SeatmapKeyPrefix, showID)
}
