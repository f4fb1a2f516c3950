package database

import (
	"cinebook/internal/orders"
	"cinebook/internal/shows"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&shows.Movie{},
		&shows.Theatre{},
		&shows.Show{},
		&orders.Order{},
		&orders.ConfirmedSeat{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
