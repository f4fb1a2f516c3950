package shows

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	GetShowDetails(ctx context.Context, showID string) (*ShowDetails, error)
	ConfirmedSeatsForShow(ctx context.Context, showID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetShowDetails loads a show with its movie and theatre context in one
// query. Returns (nil, nil) when the show does not exist.
func (r *repository) GetShowDetails(ctx context.Context, showID string) (*ShowDetails, error) {
	var details ShowDetails

	err := r.db.WithContext(ctx).
		Table("shows").
		Select(`shows.show_id, shows.movie_id, shows.theatre_id, shows.start_time,
			shows.price, shows.status,
			movies.title AS movie_title,
			theatres.name AS theatre_name,
			theatres.rows AS theatre_rows,
			theatres.seats_per_row AS seats_per_row,
			theatres.premium_from_row AS premium_from_row,
			theatres.blocked_seats AS blocked_seats`).
		Joins("JOIN movies ON movies.movie_id = shows.movie_id").
		Joins("JOIN theatres ON theatres.theatre_id = shows.theatre_id").
		Where("shows.show_id = ?", showID).
		First(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &details, nil
}

// ConfirmedSeatsForShow returns the union of seat IDs over all CONFIRMED
// orders of the show, deduplicated in first-seen order.
func (r *repository) ConfirmedSeatsForShow(ctx context.Context, showID string) ([]string, error) {
	var seatLists []SeatList

	err := r.db.WithContext(ctx).
		Table("orders").
		Where("show_id = ? AND status = ?", showID, "CONFIRMED").
		Pluck("seat_ids", &seatLists).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var seats []string
	for _, list := range seatLists {
		for _, seat := range list {
			if !seen[seat] {
				seen[seat] = true
				seats = append(seats, seat)
			}
		}
	}

	return seats, nil
}
