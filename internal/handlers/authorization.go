package handlers

import (
	"github.com/ridebuddy/ridebuddy-backend/internal/models"
	"gorm.io/gorm"
)

// RideRole is the caller's relationship to a ride. Every driver-only and
// participant-only operation resolves it through rideRoleFor instead of
// repeating the join-and-compare logic.
type RideRole int

const (
	RideRoleUnauthorized RideRole = iota
	RideRoleDriver
	RideRoleConfirmedPassenger
)

// rideRoleFor resolves the caller's role for a ride. Returns
// gorm.ErrRecordNotFound when the ride does not exist.
func rideRoleFor(db *gorm.DB, userID, rideID uint) (RideRole, error) {
	var ride models.Ride
	if err := db.First(&ride, rideID).Error; err != nil {
		return RideRoleUnauthorized, err
	}

	if ride.DriverID == userID {
		return RideRoleDriver, nil
	}

	var confirmed int64
	err := db.Model(&models.Booking{}).
		Where("ride_id = ? AND passenger_id = ? AND status = ?",
			rideID, userID, models.BookingStatusConfirmed).
		Count(&confirmed).Error
	if err != nil {
		return RideRoleUnauthorized, err
	}

	if confirmed > 0 {
		return RideRoleConfirmedPassenger, nil
	}
	return RideRoleUnauthorized, nil
}
