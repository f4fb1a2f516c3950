package notifications

import "time"

// Event types emitted over the booking lifecycle
const (
	EventHoldCreated    = "hold.created"
	EventHoldReleased   = "hold.released"
	EventHoldExpired    = "hold.expired"
	EventOrderCreated   = "order.created"
	EventOrderConfirmed = "order.confirmed"
	EventShowSoldOut    = "show.sold_out"
)

// Envelope is the wire format for every booking event
type Envelope struct {
	EventType string      `json:"eventType"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEnvelope wraps event data with its type and a UTC ISO-8601 timestamp
func NewEnvelope(eventType string, data interface{}) *Envelope {
	return &Envelope{
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}
}

// Customer is the denormalized customer context on order events
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type HoldCreatedData struct {
	HoldID      string   `json:"hold_id"`
	ShowID      string   `json:"show_id"`
	UserID      string   `json:"user_id"`
	SeatIDs     []string `json:"seat_ids"`
	Quantity    int      `json:"quantity"`
	MovieTitle  string   `json:"movie_title"`
	TheatreName string   `json:"theatre_name"`
	ExpiresAt   string   `json:"expires_at"`
}

type HoldReleasedData struct {
	HoldID        string   `json:"hold_id"`
	ShowID        string   `json:"show_id"`
	UserID        string   `json:"user_id"`
	ReleasedSeats []string `json:"released_seats"`
}

type HoldExpiredData struct {
	HoldID   string   `json:"hold_id,omitempty"`
	OrderID  string   `json:"order_id,omitempty"`
	ShowID   string   `json:"show_id"`
	UserID   string   `json:"user_id"`
	SeatIDs  []string `json:"seat_ids"`
	Quantity int      `json:"quantity"`
}

type OrderCreatedData struct {
	OrderID     string   `json:"order_id"`
	HoldID      string   `json:"hold_id"`
	ShowID      string   `json:"show_id"`
	UserID      string   `json:"user_id"`
	SeatIDs     []string `json:"seat_ids"`
	Amount      float64  `json:"amount"`
	MovieTitle  string   `json:"movie_title"`
	TheatreName string   `json:"theatre_name"`
	Customer    Customer `json:"customer"`
	ExpiresAt   string   `json:"expires_at"`
}

type OrderConfirmedData struct {
	OrderID     string   `json:"order_id"`
	ShowID      string   `json:"show_id"`
	UserID      string   `json:"user_id"`
	SeatIDs     []string `json:"seat_ids"`
	Amount      float64  `json:"amount"`
	TicketCode  string   `json:"ticket_code"`
	MovieTitle  string   `json:"movie_title"`
	TheatreName string   `json:"theatre_name"`
	Customer    Customer `json:"customer"`
}

type ShowSoldOutData struct {
	ShowID      string `json:"show_id"`
	MovieTitle  string `json:"movie_title"`
	TheatreName string `json:"theatre_name"`
	StartTime   string `json:"start_time"`
}
