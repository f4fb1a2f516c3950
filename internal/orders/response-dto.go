package orders

import "time"

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderResponse struct {
	OrderID     string           `json:"order_id"`
	HoldID      string           `json:"hold_id"`
	ShowID      string           `json:"show_id"`
	UserID      string           `json:"user_id"`
	SeatIDs     []string         `json:"seat_ids"`
	Amount      float64          `json:"amount"`
	Status      string           `json:"status"`
	Customer    CustomerResponse `json:"customer"`
	TicketCode  *string          `json:"ticket_code,omitempty"`
	MovieTitle  string           `json:"movie_title,omitempty"`
	TheatreName string           `json:"theatre_name,omitempty"`
	StartTime   *time.Time       `json:"start_time,omitempty"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
}
