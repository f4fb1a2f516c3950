package seatmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/shared/apperrors"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/constants"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

// ShowRepository provides show context and confirmed-seat lookups
type ShowRepository interface {
	GetShowDetails(ctx context.Context, showID string) (*shows.ShowDetails, error)
	ConfirmedSeatsForShow(ctx context.Context, showID string) ([]string, error)
}

// LockLister reads the currently locked seats of a show
type LockLister interface {
	ListLockedSeats(ctx context.Context, showID string) ([]string, error)
}

type Service interface {
	GetSeatmap(ctx context.Context, showID string) (*Seatmap, error)
	Invalidate(ctx context.Context, showID string) error
}

type service struct {
	shows   ShowRepository
	locks   LockLister
	cache   cache.Service
	booking config.BookingConfig
	logger  *logger.Logger
}

func NewService(showRepo ShowRepository, locks LockLister, cacheService cache.Service, booking config.BookingConfig) Service {
	return &service{
		shows:   showRepo,
		locks:   locks,
		cache:   cacheService,
		booking: booking,
		logger:  logger.GetDefault(),
	}
}

// GetSeatmap returns the cached projection when fresh, otherwise rebuilds it
// from the durable store and the lock coordinator.
func (s *service) GetSeatmap(ctx context.Context, showID string) (*Seatmap, error) {
	cacheKey := constants.BuildSeatmapKey(showID)

	var cached Seatmap
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.ErrorWithContext(ctx, "seatmap cache read failed", err,
			map[string]interface{}{"show_id": showID})
	}

	show, err := s.shows.GetShowDetails(ctx, showID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}
	if show == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Show not found")
	}

	confirmed, err := s.shows.ConfirmedSeatsForShow(ctx, showID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}

	// Locked seats are best effort: if the scan fails the map renders
	// without them rather than failing the request.
	locked, err := s.locks.ListLockedSeats(ctx, showID)
	if err != nil {
		s.logger.ErrorWithContext(ctx, "failed to list locked seats", err,
			map[string]interface{}{"show_id": showID})
		locked = nil
	}

	seatmap := buildSeatmap(show, confirmed, locked)

	if err := s.cache.Set(ctx, cacheKey, seatmap, s.booking.SeatmapCacheTTL); err != nil {
		s.logger.ErrorWithContext(ctx, "seatmap cache write failed", err,
			map[string]interface{}{"show_id": showID})
	}

	return seatmap, nil
}

// Invalidate drops the cached projection so the next read rebuilds it.
func (s *service) Invalidate(ctx context.Context, showID string) error {
	return s.cache.Delete(ctx, constants.BuildSeatmapKey(showID))
}

// buildSeatmap renders the nested-rows layout from the theatre geometry.
// Status precedence: unavailable beats locked beats available.
func buildSeatmap(show *shows.ShowDetails, confirmed, locked []string) *Seatmap {
	unavailableSet := make(map[string]bool, len(confirmed)+len(show.BlockedSeats))
	for _, seat := range confirmed {
		unavailableSet[seat] = true
	}
	for _, seat := range show.BlockedSeats {
		unavailableSet[seat] = true
	}

	lockedSet := make(map[string]bool, len(locked))
	for _, seat := range locked {
		lockedSet[seat] = true
	}

	available := 0
	unavailableIDs := make([]string, 0, len(unavailableSet))
	heldIDs := make([]string, 0, len(lockedSet))
	rows := make([]Row, 0, show.TheatreRows)
	for i := 0; i < show.TheatreRows; i++ {
		rowLetter := string(rune('A' + i))

		seatType := SeatTypeRegular
		if show.PremiumFromRow != "" && rowLetter >= show.PremiumFromRow {
			seatType = SeatTypePremium
		}

		seats := make([]Seat, 0, show.SeatsPerRow)
		for n := 1; n <= show.SeatsPerRow; n++ {
			seatID := fmt.Sprintf("%s%d", rowLetter, n)

			status := SeatStatusAvailable
			switch {
			case unavailableSet[seatID]:
				status = SeatStatusUnavailable
				unavailableIDs = append(unavailableIDs, seatID)
			case lockedSet[seatID]:
				status = SeatStatusLocked
				heldIDs = append(heldIDs, seatID)
			default:
				available++
			}

			seats = append(seats, Seat{
				SeatID: seatID,
				Type:   seatType,
				Status: status,
			})
		}

		rows = append(rows, Row{Row: rowLetter, Seats: seats})
	}

	return &Seatmap{
		ShowID:             show.ShowID,
		MovieTitle:         show.MovieTitle,
		TheatreName:        show.TheatreName,
		StartTime:          show.StartTime,
		Rows:               rows,
		UnavailableSeatIDs: unavailableIDs,
		HeldSeatIDs:        heldIDs,
		Available:          available,
		GeneratedAt:        time.Now().UTC(),
	}
}
