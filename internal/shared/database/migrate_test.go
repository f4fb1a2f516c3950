package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB connects to a local test database, skipping when Postgres is
// not reachable.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=cinebook_test port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		t.Skip("postgres not available")
	}

	return db
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)

	// Startup runs AutoMigrate plus the constraint statements; both must
	// succeed against a real Postgres, and a second run must be a no-op.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	t.Run("confirmed seats are unique per show", func(t *testing.T) {
		showID := "99999999-9999-4999-8999-999999999999"
		require.NoError(t, db.Exec(`DELETE FROM confirmed_seats WHERE show_id = ?`, showID).Error)

		require.NoError(t, db.Exec(
			`INSERT INTO confirmed_seats (show_id, seat_id, order_id) VALUES (?, ?, ?)`,
			showID, "A1", "99999999-9999-4999-8999-000000000001").Error)

		err := db.Exec(
			`INSERT INTO confirmed_seats (show_id, seat_id, order_id) VALUES (?, ?, ?)`,
			showID, "A1", "99999999-9999-4999-8999-000000000002").Error
		assert.Error(t, err)

		require.NoError(t, db.Exec(`DELETE FROM confirmed_seats WHERE show_id = ?`, showID).Error)
	})
}
