package orders

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
	GetHold(ctx context.Context, holdID string) (*seatlock.Hold, error)
	DeleteHold(ctx context.Context, holdID string) error
}

// ShowRepository provides show context lookups
type ShowRepository interface {
	GetShowDetails(ctx context.Context, showID string) (*shows.ShowDetails, error)
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
	CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResponse, error)
	GetOrder(ctx context.Context, userID, orderID string) (*OrderResponse, error)
	ConfirmPayment(ctx context.Context, userID, orderID string) (*OrderResponse, error)
}

type service struct {
	repo      Repository
	locks     LockCoordinator
	shows     ShowRepository
	seatmap   SeatmapInvalidator
	publisher Publisher
	booking   config.BookingConfig
	logger    *logger.Logger
}

func NewService(repo Repository, locks LockCoordinator, showRepo ShowRepository, seatmap SeatmapInvalidator, publisher Publisher, booking config.BookingConfig) Service {
	return &service{
		repo:      repo,
		locks:     locks,
		shows:     showRepo,
		seatmap:   seatmap,
		publisher: publisher,
		booking:   booking,
		logger:    logger.GetDefault(),
	}
}

// CreateOrder converts a live hold into a PAYMENT_PENDING order. The seat
// locks are re-acquired with the order TTL so they cannot lapse while the
// customer pays.
func (s *service) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResponse, error) {
	hold, err := s.locks.GetHold(ctx, req.HoldID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}
	if hold == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Hold not found or expired")
	}
	if hold.UserID != userID {
		return nil, apperrors.New(apperrors.KindForbidden, "Unauthorized")
	}

	now := time.Now().UTC()
	if hold.Status == seatlock.HoldStatusHeld && hold.IsExpired(now) {
		return nil, apperrors.New(apperrors.KindExpired, "Hold has expired")
	}
	if hold.Status != seatlock.HoldStatusHeld {
		return nil, apperrors.Newf(apperrors.KindConflictState, "Cannot create order from hold with status: %s", hold.Status)
	}

	show, err := s.shows.GetShowDetails(ctx, hold.ShowID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}
	if show == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Show not found")
	}

	// Extend the locks to cover the payment window. Same-owner re-acquire
	// is idempotent, so a retry of this call is safe.
	if err := s.locks.Acquire(ctx, hold.ShowID, userID, hold.HoldID, hold.SeatIDs, s.booking.OrderTTL); err != nil {
		var conflict *seatlock.ConflictError
		if errors.As(err, &conflict) {
			return nil, apperrors.WithSeat(apperrors.KindConflictHeld, conflict.Seat,
				"Seat "+conflict.Seat+" is no longer available")
		}
		return nil, apperrors.Wrap(apperrors.KindTransient, "Failed to reserve seats. Please try again.", err)
	}

	order := &Order{
		OrderID:       uuid.NewString(),
		HoldID:        hold.HoldID,
		ShowID:        hold.ShowID,
		UserID:        userID,
		SeatIDs:       shows.SeatList(hold.SeatIDs),
		Amount:        show.Price * float64(len(hold.SeatIDs)),
		Status:        OrderStatusPaymentPending,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		ExpiresAt:     now.Add(s.booking.OrderTTL),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Failed to create order. Please try again.", err)
	}

	// The hold is consumed; its seat locks now belong to the order
	if err := s.locks.DeleteHold(ctx, hold.HoldID); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to delete consumed hold", err,
			map[string]interface{}{"hold_id": hold.HoldID, "order_id": order.OrderID})
	}

	s.invalidateSeatmap(ctx, hold.ShowID)

	s.publish(ctx, notifications.EventOrderCreated, notifications.OrderCreatedData{
		OrderID:     order.OrderID,
		HoldID:      order.HoldID,
		ShowID:      order.ShowID,
		UserID:      order.UserID,
		SeatIDs:     order.SeatIDs,
		Amount:      order.Amount,
		MovieTitle:  show.MovieTitle,
		TheatreName: show.TheatreName,
		Customer:    notifications.Customer{Name: order.CustomerName, Email: order.CustomerEmail, Phone: order.CustomerPhone},
		ExpiresAt:   order.ExpiresAt.Format(time.RFC3339),
	})
	s.logger.LogOrderCreated(ctx, order.OrderID, order.HoldID, order.ShowID, userID)

	resp := orderToResponse(order)
	resp.MovieTitle = show.MovieTitle
	resp.TheatreName = show.TheatreName
	resp.StartTime = &show.StartTime
	return resp, nil
}

// GetOrder returns the order as the caller should see it. A pending order
// past its payment deadline reads as EXPIRED without mutating state; the
// sweep owns the actual transition.
func (s *service) GetOrder(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	details, err := s.fetchOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	resp := detailsToResponse(details)
	if details.Status == OrderStatusPaymentPending && details.IsExpired(time.Now().UTC()) {
		resp.Status = OrderStatusExpired
	}
	return resp, nil
}

// ConfirmPayment settles a pending order: compare-and-set to CONFIRMED,
// issue the ticket code and pin the seats durably. The seat locks are
// released afterwards since confirmed_seats now guards availability.
func (s *service) ConfirmPayment(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	details, err := s.fetchOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case details.Status == OrderStatusConfirmed:
		return nil, apperrors.New(apperrors.KindConflictState, "Order has already been confirmed")
	case details.Status == OrderStatusExpired || details.IsExpired(now):
		return nil, apperrors.New(apperrors.KindExpired, "Order has expired")
	}

	ticketCode := "BMS" + strings.ToUpper(orderID[:8])

	confirmed, err := s.repo.ConfirmPayment(ctx, orderID, ticketCode, now)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Failed to confirm payment. Please try again.", err)
	}
	if !confirmed {
		// Lost the race against another confirm or the expiry sweep
		return nil, apperrors.New(apperrors.KindConflictState, "Order is not awaiting payment")
	}

	// Locks are redundant once the seats are pinned durably
	if _, err := s.locks.Release(ctx, details.ShowID, userID, details.SeatIDs); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to release locks after confirmation", err,
			map[string]interface{}{"order_id": orderID, "show_id": details.ShowID})
	}

	s.invalidateSeatmap(ctx, details.ShowID)

	s.publish(ctx, notifications.EventOrderConfirmed, notifications.OrderConfirmedData{
		OrderID:     orderID,
		ShowID:      details.ShowID,
		UserID:      userID,
		SeatIDs:     details.SeatIDs,
		Amount:      details.Amount,
		TicketCode:  ticketCode,
		MovieTitle:  details.MovieTitle,
		TheatreName: details.TheatreName,
		Customer:    notifications.Customer{Name: details.CustomerName, Email: details.CustomerEmail, Phone: details.CustomerPhone},
	})
	s.logger.LogOrderConfirmed(ctx, orderID, details.ShowID, userID, ticketCode)

	s.checkSoldOut(ctx, details.ShowID)

	details.Status = OrderStatusConfirmed
	details.TicketCode = &ticketCode
	return detailsToResponse(details), nil
}

// fetchOwnedOrder loads an order and enforces ownership.
func (s *service) fetchOwnedOrder(ctx context.Context, userID, orderID string) (*OrderDetails, error) {
	details, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}
	if details == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Order not found")
	}
	if details.UserID != userID {
		return nil, apperrors.New(apperrors.KindForbidden, "Unauthorized")
	}
	return details, nil
}

// checkSoldOut emits show.sold_out when the confirmed seat count reaches
// theatre capacity. Best effort: a failure here never fails the booking.
func (s *service) checkSoldOut(ctx context.Context, showID string) {
	show, err := s.shows.GetShowDetails(ctx, showID)
	if err != nil || show == nil {
		return
	}

	count, err := s.repo.CountConfirmedSeats(ctx, showID)
	if err != nil {
		return
	}

	if count >= int64(show.Capacity()) {
		s.publish(ctx, notifications.EventShowSoldOut, notifications.ShowSoldOutData{
			ShowID:      showID,
			MovieTitle:  show.MovieTitle,
			TheatreName: show.TheatreName,
			StartTime:   show.StartTime.Format(time.RFC3339),
		})
	}
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

func orderToResponse(order *Order) *OrderResponse {
	return &OrderResponse{
		OrderID: order.OrderID,
		HoldID:  order.HoldID,
		ShowID:  order.ShowID,
		UserID:  order.UserID,
		SeatIDs: order.SeatIDs,
		Amount:  order.Amount,
		Status:  order.Status,
		Customer: CustomerResponse{
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
			Phone: order.CustomerPhone,
		},
		TicketCode: order.TicketCode,
		ExpiresAt:  order.ExpiresAt,
		CreatedAt:  order.CreatedAt,
	}
}

func detailsToResponse(details *OrderDetails) *OrderResponse {
	resp := orderToResponse(&details.Order)
	resp.MovieTitle = details.MovieTitle
	resp.TheatreName = details.TheatreName
	startTime := details.StartTime
	resp.StartTime = &startTime
	return resp
}
