package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebook/internal/orders"
	"cinebook/internal/shows"

	"github.com/stretchr/testify/assert"
)

type fakeOrderRepo struct {
	expired []orders.Order
	err     error
}

func (f *fakeOrderRepo) ExpirePastDue(ctx context.Context, now time.Time) ([]orders.Order, error) {
	return f.expired, f.err
}

type fakeLocks struct {
	released [][]string
	err      error
}

func (f *fakeLocks) Release(ctx context.Context, showID, userID string, seatIDs []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.released = append(f.released, seatIDs)
	return seatIDs, nil
}

type fakeInvalidator struct {
	calls []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, showID string) error {
	f.calls = append(f.calls, showID)
	return nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}

func expiredOrder(orderID, showID string) orders.Order {
	return orders.Order{
		OrderID: orderID,
		ShowID:  showID,
		UserID:  "user-1",
		SeatIDs: shows.SeatList{"A1", "A2"},
		Status:  orders.OrderStatusExpired,
	}
}

func TestSweep(t *testing.T) {
	t.Run("releases locks and emits events for expired orders", func(t *testing.T) {
		repo := &fakeOrderRepo{expired: []orders.Order{
			expiredOrder("order-1", "show-1"),
			expiredOrder("order-2", "show-2"),
		}}
		locks := &fakeLocks{}
		invalidator := &fakeInvalidator{}
		publisher := &fakePublisher{}

		worker := NewOrderExpiryWorker(repo, locks, invalidator, publisher, time.Minute)
		worker.Sweep(context.Background())

		assert.Len(t, locks.released, 2)
		assert.Equal(t, []string{"show-1", "show-2"}, invalidator.calls)
		assert.Equal(t, []string{"hold.expired", "hold.expired"}, publisher.events)
	})

	t.Run("does nothing when no orders are past due", func(t *testing.T) {
		locks := &fakeLocks{}
		publisher := &fakePublisher{}

		worker := NewOrderExpiryWorker(&fakeOrderRepo{}, locks, &fakeInvalidator{}, publisher, time.Minute)
		worker.Sweep(context.Background())

		assert.Empty(t, locks.released)
		assert.Empty(t, publisher.events)
	})

	t.Run("continues past lock release failures", func(t *testing.T) {
		repo := &fakeOrderRepo{expired: []orders.Order{expiredOrder("order-1", "show-1")}}
		locks := &fakeLocks{err: errors.New("redis down")}
		invalidator := &fakeInvalidator{}
		publisher := &fakePublisher{}

		worker := NewOrderExpiryWorker(repo, locks, invalidator, publisher, time.Minute)
		worker.Sweep(context.Background())

		// Invalidation and the event still happen
		assert.Equal(t, []string{"show-1"}, invalidator.calls)
		assert.Equal(t, []string{"hold.expired"}, publisher.events)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		worker := NewOrderExpiryWorker(&fakeOrderRepo{}, &fakeLocks{}, &fakeInvalidator{}, &fakePublisher{}, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			worker.Start(ctx)
			close(done)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop after cancellation")
		}
	})
}
