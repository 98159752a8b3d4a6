package handlers

import (
	"errors"
	"testing"

	"github.com/ridebuddy/ridebuddy-backend/internal/models"
	"gorm.io/gorm"
)

func TestRideRoleFor(t *testing.T) {
	db := newTestDB(t)
	driver := createTestUser(t, db, true)
	confirmed := createTestUser(t, db, false)
	pending := createTestUser(t, db, false)
	stranger := createTestUser(t, db, false)
	ride := createTestRide(t, db, driver.ID, 4, 10, "Downtown", "Airport", testDeparture())

	for _, booking := range []models.Booking{
		{RideID: ride.ID, PassengerID: confirmed.ID, SeatsBooked: 1, Status: models.BookingStatusConfirmed, TotalAmount: 10},
		{RideID: ride.ID, PassengerID: pending.ID, SeatsBooked: 1, Status: models.BookingStatusPending, TotalAmount: 10},
	} {
		if err := db.Create(&booking).Error; err != nil {
			t.Fatalf("failed to seed booking: %v", err)
		}
	}

	cases := []struct {
		name   string
		userID uint
		want   RideRole
	}{
		{"driver", driver.ID, RideRoleDriver},
		{"confirmed passenger", confirmed.ID, RideRoleConfirmedPassenger},
		{"pending passenger", pending.ID, RideRoleUnauthorized},
		{"stranger", stranger.ID, RideRoleUnauthorized},
	}

	for _, tc := range cases {
		role, err := rideRoleFor(db, tc.userID, ride.ID)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if role != tc.want {
			t.Fatalf("%s: expected role %d, got %d", tc.name, tc.want, role)
		}
	}

	if _, err := rideRoleFor(db, driver.ID, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for missing ride, got %v", err)
	}
}
