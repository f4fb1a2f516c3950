package holds

import "time"

type HoldResponse struct {
	HoldID    string    `json:"hold_id"`
	ShowID    string    `json:"show_id"`
	UserID    string    `json:"user_id"`
	SeatIDs   []string  `json:"seat_ids"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReleaseHoldResponse struct {
	HoldID        string   `json:"hold_id"`
	Status        string   `json:"status"`
	ReleasedSeats []string `json:"released_seats"`
}
