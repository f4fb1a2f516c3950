package seatmap

import "time"

// Seat types
const (
	SeatTypeRegular = "regular"
	SeatTypePremium = "premium"
)

// Seat statuses in the availability projection
const (
	SeatStatusAvailable   = "available"
	SeatStatusLocked      = "locked"
	SeatStatusUnavailable = "unavailable"
)

type Seat struct {
	SeatID string `json:"seat_id"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type Row struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

// Seatmap is the availability projection for a show. It is advisory: the
// lock coordinator and confirmed_seats remain the source of truth, and the
// projection may lag them by up to the cache TTL.
type Seatmap struct {
	ShowID      string    `json:"show_id"`
	MovieTitle  string    `json:"movie_title"`
	TheatreName string    `json:"theatre_name"`
	StartTime   time.Time `json:"start_time"`
	Rows        []Row     `json:"rows"`
	// Flat views of the grid so clients can tell booked from held without
	// walking the rows. Field names match the established client contract.
	UnavailableSeatIDs []string  `json:"unavailableSeatIds"`
	HeldSeatIDs        []string  `json:"heldSeatIds"`
	Available          int       `json:"available"`
	GeneratedAt        time.Time `json:"generated_at"`
}
