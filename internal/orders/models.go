package orders

import (
	"time"

	"cinebook/internal/shows"
)

// Order statuses
const (
	OrderStatusPaymentPending = "PAYMENT_PENDING"
	OrderStatusConfirmed      = "CONFIRMED"
	OrderStatusExpired        = "EXPIRED"
)

type Order struct {
	OrderID       string         `json:"order_id" gorm:"column:order_id;type:uuid;primaryKey"`
	HoldID        string         `json:"hold_id" gorm:"column:hold_id;type:uuid;not null"`
	ShowID        string         `json:"show_id" gorm:"column:show_id;type:uuid;not null;index:idx_orders_show_status"`
	UserID        string         `json:"user_id" gorm:"column:user_id;not null;index"`
	SeatIDs       shows.SeatList `json:"seat_ids" gorm:"column:seat_ids;type:jsonb;not null"`
	Amount        float64        `json:"amount" gorm:"not null;check:amount >= 0"`
	Status        string         `json:"status" gorm:"type:varchar(20);not null;index:idx_orders_show_status"`
	CustomerName  string         `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail string         `json:"customer_email" gorm:"size:255;not null"`
	CustomerPhone string         `json:"customer_phone" gorm:"size:20;not null"`
	TicketCode    *string        `json:"ticket_code" gorm:"size:20"`
	ExpiresAt     time.Time      `json:"expires_at" gorm:"not null;index"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsExpired reports whether a pending order's payment window has closed.
func (o *Order) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// ConfirmedSeat pins a sold seat to its order. The (show_id, seat_id) unique
// constraint makes double-selling impossible at the database level.
type ConfirmedSeat struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ShowID    string    `json:"show_id" gorm:"column:show_id;type:uuid;not null;uniqueIndex:uniq_confirmed_seat"`
	SeatID    string    `json:"seat_id" gorm:"column:seat_id;size:4;not null;uniqueIndex:uniq_confirmed_seat"`
	OrderID   string    `json:"order_id" gorm:"column:order_id;type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// OrderDetails is an order joined with its show, movie and theatre context.
type OrderDetails struct {
	Order
	MovieTitle  string    `json:"movie_title" gorm:"column:movie_title"`
	TheatreName string    `json:"theatre_name" gorm:"column:theatre_name"`
	StartTime   time.Time `json:"start_time" gorm:"column:start_time"`
}
