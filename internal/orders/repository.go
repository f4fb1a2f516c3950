package orders

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID string) (*OrderDetails, error)
	ConfirmPayment(ctx context.Context, orderID, ticketCode string, now time.Time) (bool, error)
	CountConfirmedSeats(ctx context.Context, showID string) (int64, error)
	ExpirePastDue(ctx context.Context, now time.Time) ([]Order, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID loads an order with its show context. Returns (nil, nil) when the
// order does not exist.
func (r *repository) GetByID(ctx context.Context, orderID string) (*OrderDetails, error) {
	var details OrderDetails

	err := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.*,
			movies.title AS movie_title,
			theatres.name AS theatre_name,
			shows.start_time AS start_time`).
		Joins("JOIN shows ON shows.show_id = orders.show_id").
		Joins("JOIN movies ON movies.movie_id = shows.movie_id").
		Joins("JOIN theatres ON theatres.theatre_id = shows.theatre_id").
		Where("orders.order_id = ?", orderID).
		First(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &details, nil
}

// ConfirmPayment flips a pending order to CONFIRMED with a compare-and-set
// and pins its seats in confirmed_seats inside the same transaction. Returns
// false when the order was not in PAYMENT_PENDING, so concurrent confirms
// and the expiry sweep cannot both win.
func (r *repository) ConfirmPayment(ctx context.Context, orderID, ticketCode string, now time.Time) (bool, error) {
	confirmed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Order{}).
			Where("order_id = ? AND status = ?", orderID, OrderStatusPaymentPending).
			Updates(map[string]interface{}{
				"status":      OrderStatusConfirmed,
				"ticket_code": ticketCode,
				"updated_at":  now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		var order Order
		if err := tx.Where("order_id = ?", orderID).First(&order).Error; err != nil {
			return err
		}

		seats := make([]ConfirmedSeat, 0, len(order.SeatIDs))
		for _, seatID := range order.SeatIDs {
			seats = append(seats, ConfirmedSeat{
				ShowID:  order.ShowID,
				SeatID:  seatID,
				OrderID: order.OrderID,
			})
		}
		if err := tx.Create(&seats).Error; err != nil {
			return err
		}

		confirmed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return confirmed, nil
}

func (r *repository) CountConfirmedSeats(ctx context.Context, showID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ConfirmedSeat{}).
		Where("show_id = ?", showID).
		Count(&count).Error
	return count, err
}

// ExpirePastDue marks past-due pending orders EXPIRED and returns the orders
// it transitioned, so the caller can release their seat locks.
func (r *repository) ExpirePastDue(ctx context.Context, now time.Time) ([]Order, error) {
	var pastDue []Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", OrderStatusPaymentPending, now).
		Find(&pastDue).Error
	if err != nil {
		return nil, err
	}

	var expired []Order
	for _, order := range pastDue {
		// CAS per order: a concurrent confirm wins and we skip it
		result := r.db.WithContext(ctx).Model(&Order{}).
			Where("order_id = ? AND status = ?", order.OrderID, OrderStatusPaymentPending).
			Updates(map[string]interface{}{
				"status":     OrderStatusExpired,
				"updated_at": now,
			})
		if result.Error != nil {
			return expired, result.Error
		}
		if result.RowsAffected > 0 {
			order.Status = OrderStatusExpired
			expired = append(expired, order)
		}
	}

	return expired, nil
}
