package holds

import (
	"context"
	"errors"
	"strings"
	"time"

	"cinebook/internal/notifications"
	"cinebook/internal/seatlock"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/shared/config"
	"cinebook/internal/shows"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// LockCoordinator is the slice of the seat lock coordinator this service uses
type LockCoordinator interface {
	Acquire(ctx context.Context, showID, userID, holdID string, seatIDs []string, ttl time.Duration) error
	Release(ctx context.Context, showID, userID string, seatIDs []string) ([]string, error)
	PutHold(ctx context.Context, hold *seatlock.Hold, ttl time.Duration) error
	GetHold(ctx context.Context, holdID string) (*seatlock.Hold, error)
}

// ShowRepository provides show context and confirmed-seat lookups
type ShowRepository interface {
	GetShowDetails(ctx context.Context, showID string) (*shows.ShowDetails, error)
	ConfirmedSeatsForShow(ctx context.Context, showID string) ([]string, error)
}

// SeatmapInvalidator drops the cached availability projection for a show
type SeatmapInvalidator interface {
	Invalidate(ctx context.Context, showID string) error
}

// Publisher emits booking lifecycle events
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

type Service interface {
	CreateHold(ctx context.Context, userID string, req CreateHoldRequest) (*HoldResponse, error)
	GetHold(ctx context.Context, userID, holdID string) (*HoldResponse, error)
	ReleaseHold(ctx context.Context, userID, holdID string) (*ReleaseHoldResponse, error)
}

type service struct {
	locks     LockCoordinator
	shows     ShowRepository
	seatmap   SeatmapInvalidator
	publisher Publisher
	booking   config.BookingConfig
	logger    *logger.Logger
}

func NewService(locks LockCoordinator, showRepo ShowRepository, seatmap SeatmapInvalidator, publisher Publisher, booking config.BookingConfig) Service {
	return &service{
		locks:     locks,
		shows:     showRepo,
		seatmap:   seatmap,
		publisher: publisher,
		booking:   booking,
		logger:    logger.GetDefault(),
	}
}

// CreateHold atomically locks the requested seats and stores a hold record.
// Either all seats get locked or the request fails with the offending seat.
func (s *service) CreateHold(ctx context.Context, userID string, req CreateHoldRequest) (*HoldResponse, error) {
	if req.Quantity != len(req.SeatIDs) {
		return nil, apperrors.New(apperrors.KindValidation, "Quantity must match the number of seats")
	}
	if s.booking.MaxSeatsPerBooking > 0 && len(req.SeatIDs) > s.booking.MaxSeatsPerBooking {
		return nil, apperrors.Newf(apperrors.KindValidation, "Cannot hold more than %d seats per booking", s.booking.MaxSeatsPerBooking)
	}
	if seat, ok := firstDuplicate(req.SeatIDs); ok {
		return nil, apperrors.Newf(apperrors.KindValidation, "Duplicate seat in request: %s", seat)
	}

	show, err := s.shows.GetShowDetails(ctx, req.ShowID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}
	if show == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Show not found")
	}

	now := time.Now().UTC()
	if show.HasStarted(now) {
		return nil, apperrors.New(apperrors.KindConflictUnavailable, "Cannot book seats for a show that has already started")
	}

	if err := s.checkDurableAvailability(ctx, show, req.SeatIDs); err != nil {
		return nil, err
	}

	holdID := uuid.NewString()
	if err := s.locks.Acquire(ctx, req.ShowID, userID, holdID, req.SeatIDs, s.booking.HoldTTL); err != nil {
		var conflict *seatlock.ConflictError
		if errors.As(err, &conflict) {
			return nil, apperrors.WithSeat(apperrors.KindConflictHeld, conflict.Seat,
				"Seat "+conflict.Seat+" is no longer available")
		}
		return nil, apperrors.Wrap(apperrors.KindTransient, "Failed to reserve seats. Please try again.", err)
	}

	hold := &seatlock.Hold{
		HoldID:    holdID,
		ShowID:    req.ShowID,
		UserID:    userID,
		SeatIDs:   req.SeatIDs,
		Quantity:  req.Quantity,
		Status:    seatlock.HoldStatusHeld,
		CreatedAt: now,
		ExpiresAt: now.Add(s.booking.HoldTTL),
	}

	if err := s.locks.PutHold(ctx, hold, s.booking.HoldTTL); err != nil {
		// Compensate: the locks must not outlive a hold record we failed to write
		if _, releaseErr := s.locks.Release(ctx, req.ShowID, userID, req.SeatIDs); releaseErr != nil {
			s.logger.ErrorWithContext(ctx, "failed to release locks after hold store failure", releaseErr,
				map[string]interface{}{"hold_id": holdID, "show_id": req.ShowID})
		}
		return nil, apperrors.Wrap(apperrors.KindTransient, "Failed to reserve seats. Please try again.", err)
	}

	s.invalidateSeatmap(ctx, req.ShowID)

	s.publish(ctx, notifications.EventHoldCreated, notifications.HoldCreatedData{
		HoldID:      hold.HoldID,
		ShowID:      hold.ShowID,
		UserID:      hold.UserID,
		SeatIDs:     hold.SeatIDs,
		Quantity:    hold.Quantity,
		MovieTitle:  show.MovieTitle,
		TheatreName: show.TheatreName,
		ExpiresAt:   hold.ExpiresAt.Format(time.RFC3339),
	})
	s.logger.LogHoldCreated(ctx, holdID, req.ShowID, userID, len(req.SeatIDs))

	return holdToResponse(hold), nil
}

// GetHold returns the hold as the caller should see it. A hold past its
// deadline is reported EXPIRED even if Redis has not evicted it yet.
func (s *service) GetHold(ctx context.Context, userID, holdID string) (*HoldResponse, error) {
	hold, err := s.fetchOwnedHold(ctx, userID, holdID)
	if err != nil {
		return nil, err
	}

	resp := holdToResponse(hold)
	if hold.Status == seatlock.HoldStatusHeld && hold.IsExpired(time.Now().UTC()) {
		resp.Status = seatlock.HoldStatusExpired
	}
	return resp, nil
}

// ReleaseHold frees the caller's seat locks ahead of the TTL.
func (s *service) ReleaseHold(ctx context.Context, userID, holdID string) (*ReleaseHoldResponse, error) {
	hold, err := s.fetchOwnedHold(ctx, userID, holdID)
	if err != nil {
		return nil, err
	}

	if hold.Status == seatlock.HoldStatusReleased {
		return nil, apperrors.New(apperrors.KindConflictState, "Hold is already released")
	}
	now := time.Now().UTC()
	if hold.Status == seatlock.HoldStatusExpired || hold.IsExpired(now) {
		return nil, apperrors.New(apperrors.KindExpired, "Hold has already expired")
	}

	released, err := s.locks.Release(ctx, hold.ShowID, userID, hold.SeatIDs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Failed to release seats. Please try again.", err)
	}

	// Keep the record around for its residual TTL so the caller can still
	// read the terminal status.
	hold.Status = seatlock.HoldStatusReleased
	if residual := time.Until(hold.ExpiresAt); residual > 0 {
		if err := s.locks.PutHold(ctx, hold, residual); err != nil {
			s.logger.ErrorWithContext(ctx, "failed to store released hold", err,
				map[string]interface{}{"hold_id": holdID})
		}
	}

	s.invalidateSeatmap(ctx, hold.ShowID)

	s.publish(ctx, notifications.EventHoldReleased, notifications.HoldReleasedData{
		HoldID:        hold.HoldID,
		ShowID:        hold.ShowID,
		UserID:        hold.UserID,
		ReleasedSeats: released,
	})
	s.logger.LogHoldReleased(ctx, holdID, hold.ShowID, userID)

	return &ReleaseHoldResponse{
		HoldID:        holdID,
		Status:        seatlock.HoldStatusReleased,
		ReleasedSeats: released,
	}, nil
}

// fetchOwnedHold loads a hold and enforces ownership.
func (s *service) fetchOwnedHold(ctx context.Context, userID, holdID string) (*seatlock.Hold, error) {
	hold, err := s.locks.GetHold(ctx, holdID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}
	if hold == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Hold not found or expired")
	}
	if hold.UserID != userID {
		return nil, apperrors.New(apperrors.KindForbidden, "Unauthorized")
	}
	return hold, nil
}

// checkDurableAvailability rejects seats that are permanently blocked or
// already sold, naming the offending seats.
func (s *service) checkDurableAvailability(ctx context.Context, show *shows.ShowDetails, seatIDs []string) error {
	confirmed, err := s.shows.ConfirmedSeatsForShow(ctx, show.ShowID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}

	confirmedSet := toSet(confirmed)
	blockedSet := toSet(show.BlockedSeats)

	var booked, blocked []string
	for _, seat := range seatIDs {
		switch {
		case confirmedSet[seat]:
			booked = append(booked, seat)
		case blockedSet[seat]:
			blocked = append(blocked, seat)
		}
	}

	if len(booked) > 0 {
		return apperrors.Newf(apperrors.KindConflictBooked, "Seats already booked: %s", strings.Join(booked, ", "))
	}
	if len(blocked) > 0 {
		return apperrors.Newf(apperrors.KindConflictUnavailable, "Seats are unavailable: %s", strings.Join(blocked, ", "))
	}
	return nil
}

func (s *service) invalidateSeatmap(ctx context.Context, showID string) {
	if err := s.seatmap.Invalidate(ctx, showID); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to invalidate seatmap cache", err,
			map[string]interface{}{"show_id": showID})
	}
}

func (s *service) publish(ctx context.Context, eventType string, data interface{}) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish event", err,
			map[string]interface{}{"event_type": eventType})
	}
}

func holdToResponse(hold *seatlock.Hold) *HoldResponse {
	return &HoldResponse{
		HoldID:    hold.HoldID,
		ShowID:    hold.ShowID,
		UserID:    hold.UserID,
		SeatIDs:   hold.SeatIDs,
		Quantity:  hold.Quantity,
		Status:    hold.Status,
		CreatedAt: hold.CreatedAt,
		ExpiresAt: hold.ExpiresAt,
	}
}

func firstDuplicate(seats []string) (string, bool) {
	seen := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if seen[seat] {
			return seat, true
		}
		seen[seat] = true
	}
	return "", false
}

func toSet(seats []string) map[string]bool {
	set := make(map[string]bool, len(seats))
	for _, seat := range seats {
		set[seat] = true
	}
	return set
}
