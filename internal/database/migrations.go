package database

import (
	"github.com/ridebuddy/ridebuddy-backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations applies schema fixups that predate AutoMigrate-managed columns.
func RunMigrations(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	// Update users table
	if db.Migrator().HasTable(&models.User{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS driver_license text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS vehicle_info text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS average_rating numeric DEFAULT 0",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE users " + column).Error; err != nil {
				return err
			}
		}
	}

	// Update rides table: older deployments tracked available_seats only
	if db.Migrator().HasTable(&models.Ride{}) {
		if err := db.Exec("ALTER TABLE rides ADD COLUMN IF NOT EXISTS seats_total integer DEFAULT 0").Error; err != nil {
			return err
		}
		if err := db.Exec("UPDATE rides SET seats_total = available_seats WHERE seats_total = 0").Error; err != nil {
			return err
		}

		db.Exec(`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_status_check`)
		db.Exec(`ALTER TABLE rides ADD CONSTRAINT rides_status_check CHECK (status IN ('active', 'inactive'))`)
		db.Exec(`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_available_seats_check`)
		db.Exec(`ALTER TABLE rides ADD CONSTRAINT rides_available_seats_check CHECK (available_seats >= 0)`)
	}

	// Update bookings table
	if db.Migrator().HasTable(&models.Booking{}) {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'rejected'))`)
	}

	return nil
}
