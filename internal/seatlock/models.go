package seatlock

import (
	"fmt"
	"time"
)

// Hold statuses
const (
	HoldStatusHeld     = "HELD"
	HoldStatusReleased = "RELEASED"
	HoldStatusExpired  = "EXPIRED"
)

// Hold is the ephemeral hold record stored alongside the seat locks.
// It shares the lock TTL so both expire together.
type Hold struct {
	HoldID    string    `json:"hold_id"`
	ShowID    string    `json:"show_id"`
	UserID    string    `json:"user_id"`
	SeatIDs   []string  `json:"seat_ids"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the hold's deadline has passed.
func (h *Hold) IsExpired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// ConflictError is returned by Acquire when a seat is locked by another user.
type ConflictError struct {
	Seat string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seat %s is locked by another user", e.Seat)
}
