package workers

import (
	"context"
	"time"

	"cinebook/internal/notifications"
	"cinebook/internal/orders"
	"cinebook/pkg/logger"
)

// OrderRepository is the slice of the orders repository the sweep uses
type OrderRepository interface {
	ExpirePastDue(ctx context.Context, now time.Time) ([]orders.Order, error)
}

// LockReleaser frees seat locks for expired orders
type LockReleaser interface {
	Release(ctx context.Context, showID, userID string, seatIDs []string) ([]string, error)
}

// SeatmapInvalidator drops the cached availability projection for a show
type SeatmapInvalidator interface {
	Invalidate(ctx context.Context, showID string) error
}

// Publisher emits booking lifecycle events
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// OrderExpiryWorker periodically marks past-due PAYMENT_PENDING orders
// EXPIRED and frees their seats. The repository transition is a
// compare-and-set, so a concurrent confirm always wins over the sweep.
type OrderExpiryWorker struct {
	repo      OrderRepository
	locks     LockReleaser
	seatmap   SeatmapInvalidator
	publisher Publisher
	interval  time.Duration
	logger    *logger.Logger
}

func NewOrderExpiryWorker(repo OrderRepository, locks LockReleaser, seatmap SeatmapInvalidator, publisher Publisher, interval time.Duration) *OrderExpiryWorker {
	return &OrderExpiryWorker{
		repo:      repo,
		locks:     locks,
		seatmap:   seatmap,
		publisher: publisher,
		interval:  interval,
		logger:    logger.GetDefault(),
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (w *OrderExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.InfoWithContext(ctx, "order expiry worker started",
		map[string]interface{}{"interval": w.interval.String()})

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoWithContext(ctx, "order expiry worker stopped", nil)
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one expiry pass. Lock release, cache invalidation and event
// emission are best effort per order; the EXPIRED transition itself is
// already durable when they run.
func (w *OrderExpiryWorker) Sweep(ctx context.Context) {
	expired, err := w.repo.ExpirePastDue(ctx, time.Now().UTC())
	if err != nil {
		w.logger.ErrorWithContext(ctx, "order expiry sweep failed", err, nil)
		return
	}

	for _, order := range expired {
		if _, err := w.locks.Release(ctx, order.ShowID, order.UserID, order.SeatIDs); err != nil {
			w.logger.ErrorWithContext(ctx, "failed to release locks for expired order", err,
				map[string]interface{}{"order_id": order.OrderID, "show_id": order.ShowID})
		}

		if err := w.seatmap.Invalidate(ctx, order.ShowID); err != nil {
			w.logger.ErrorWithContext(ctx, "failed to invalidate seatmap for expired order", err,
				map[string]interface{}{"show_id": order.ShowID})
		}

		if err := w.publisher.Publish(ctx, notifications.EventHoldExpired, notifications.HoldExpiredData{
			OrderID:  order.OrderID,
			ShowID:   order.ShowID,
			UserID:   order.UserID,
			SeatIDs:  order.SeatIDs,
			Quantity: len(order.SeatIDs),
		}); err != nil {
			w.logger.ErrorWithContext(ctx, "failed to publish expiry event", err,
				map[string]interface{}{"order_id": order.OrderID})
		}

		w.logger.LogOrderExpired(ctx, order.OrderID, order.ShowID)
	}
}
