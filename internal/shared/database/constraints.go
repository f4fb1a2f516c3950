package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A seat can be confirmed at most once per show, whatever the Redis
	// coordinator believes. Last line of defence against double booking.
	// AutoMigrate builds the same index from the model tag; IF NOT EXISTS
	// keeps the two paths idempotent.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_confirmed_seat
		ON confirmed_seats (show_id, seat_id);
	`).Error
	if err != nil {
		return err
	}

	// Ticket codes must be globally unique
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_orders_ticket_code
		ON orders (ticket_code)
		WHERE ticket_code IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Index for availability queries (confirmed seats per show)
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_orders_show_status
		ON orders (show_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Index for the order-expiry sweep
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_orders_status_expires_at
		ON orders (status, expires_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
