package shows

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Show statuses
const (
	ShowStatusScheduled = "SCHEDULED"
	ShowStatusCancelled = "CANCELLED"
)

// SeatList is a JSON-encoded list of seat IDs stored in a jsonb column.
type SeatList []string

// Value implements driver.Valuer
func (s SeatList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal seat list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *SeatList) Scan(value interface{}) error {
	if value == nil {
		*s = SeatList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported seat list type: %T", value)
	}

	return json.Unmarshal(data, s)
}

// GormDataType tells gorm to use jsonb for this type
func (SeatList) GormDataType() string {
	return "jsonb"
}

type Movie struct {
	MovieID         string    `json:"movie_id" gorm:"column:movie_id;type:uuid;primaryKey"`
	Title           string    `json:"title" gorm:"not null;size:255"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	Language        string    `json:"language" gorm:"size:50"`
	Genre           string    `json:"genre" gorm:"size:100"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Theatre struct {
	TheatreID   string   `json:"theatre_id" gorm:"column:theatre_id;type:uuid;primaryKey"`
	Name        string   `json:"name" gorm:"not null;size:255"`
	City        string   `json:"city" gorm:"size:100"`
	Rows        int      `json:"rows" gorm:"not null;check:rows > 0"`
	SeatsPerRow int      `json:"seats_per_row" gorm:"not null;check:seats_per_row > 0"`
	// Rows from this letter onward are premium-priced in the seatmap layout
	PremiumFromRow string    `json:"premium_from_row" gorm:"size:2;default:'C'"`
	BlockedSeats   SeatList  `json:"blocked_seats" gorm:"type:jsonb"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Capacity is the number of sellable seats in the theatre.
func (t *Theatre) Capacity() int {
	return t.Rows*t.SeatsPerRow - len(t.BlockedSeats)
}

type Show struct {
	ShowID    string    `json:"show_id" gorm:"column:show_id;type:uuid;primaryKey"`
	MovieID   string    `json:"movie_id" gorm:"column:movie_id;type:uuid;not null;index"`
	TheatreID string    `json:"theatre_id" gorm:"column:theatre_id;type:uuid;not null;index"`
	StartTime time.Time `json:"start_time" gorm:"not null;index"`
	Price     float64   `json:"price" gorm:"not null;check:price >= 0"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'SCHEDULED'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ShowDetails is a show joined with its movie and theatre context. This is
// the shape every booking operation works against.
type ShowDetails struct {
	ShowID         string    `json:"show_id" gorm:"column:show_id"`
	MovieID        string    `json:"movie_id" gorm:"column:movie_id"`
	TheatreID      string    `json:"theatre_id" gorm:"column:theatre_id"`
	StartTime      time.Time `json:"start_time" gorm:"column:start_time"`
	Price          float64   `json:"price" gorm:"column:price"`
	Status         string    `json:"status" gorm:"column:status"`
	MovieTitle     string    `json:"movie_title" gorm:"column:movie_title"`
	TheatreName    string    `json:"theatre_name" gorm:"column:theatre_name"`
	TheatreRows    int       `json:"theatre_rows" gorm:"column:theatre_rows"`
	SeatsPerRow    int       `json:"seats_per_row" gorm:"column:seats_per_row"`
	PremiumFromRow string    `json:"premium_from_row" gorm:"column:premium_from_row"`
	BlockedSeats   SeatList  `json:"blocked_seats" gorm:"column:blocked_seats;type:jsonb"`
}

// Capacity is the number of sellable seats for the show.
func (s *ShowDetails) Capacity() int {
	return s.TheatreRows*s.SeatsPerRow - len(s.BlockedSeats)
}

// HasStarted reports whether the show has already started.
func (s *ShowDetails) HasStarted(now time.Time) bool {
	return !now.Before(s.StartTime)
}
