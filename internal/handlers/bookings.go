package handlers

import (
	"errors"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ridebuddy/ridebuddy-backend/internal/middleware"
	"github.com/ridebuddy/ridebuddy-backend/internal/models"
	"github.com/ridebuddy/ridebuddy-backend/internal/services"
	"gorm.io/gorm"
)

var errInsufficientSeats = errors.New("not enough seats available")

// restoreSeatsOnReject reports whether rejecting a booking should return its
// seats to the ride. Off by default: a rejected request keeps its seats
// consumed, matching the historical accounting.
func restoreSeatsOnReject() bool {
	return os.Getenv("RESTORE_SEATS_ON_REJECT") == "true"
}

// CreateBooking reserves seats on a ride for the calling passenger.
//
// The availability check, the seat decrement and the booking insert run in one
// transaction. The decrement is conditional on available_seats staying
// non-negative, so two passengers racing for the last seat serialize on the
// ride row and exactly one of them wins.
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			RideID        uint   `json:"rideId" binding:"required"`
			Seats         int    `json:"seats" binding:"required,min=1"`
			PaymentMethod string `json:"paymentMethod"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var ride models.Ride
		if err := db.First(&ride, input.RideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		if ride.DriverID == userId {
			c.JSON(400, gin.H{"error": "You cannot book your own ride"})
			return
		}

		if input.Seats > ride.AvailableSeats {
			middleware.BookingsCreatedTotal.WithLabelValues("insufficient_seats").Inc()
			c.JSON(400, gin.H{"error": "Not enough seats available"})
			return
		}

		// Amount is always computed server-side from the stored price.
		booking := models.Booking{
			RideID:        input.RideID,
			PassengerID:   userId,
			SeatsBooked:   input.Seats,
			Status:        models.BookingStatusPending,
			TotalAmount:   ride.PricePerSeat * float64(input.Seats),
			PaymentStatus: models.PaymentStatusUnpaid,
			PaymentMethod: input.PaymentMethod,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Ride{}).
				Where("id = ? AND available_seats >= ?", input.RideID, input.Seats).
				Update("available_seats", gorm.Expr("available_seats - ?", input.Seats))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientSeats
			}
			return tx.Create(&booking).Error
		})
		if err != nil {
			if errors.Is(err, errInsufficientSeats) {
				middleware.BookingsCreatedTotal.WithLabelValues("insufficient_seats").Inc()
				c.JSON(400, gin.H{"error": "Not enough seats available"})
				return
			}
			middleware.BookingsCreatedTotal.WithLabelValues("error").Inc()
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		middleware.BookingsCreatedTotal.WithLabelValues("created").Inc()

		services.PublishBookingUpdate(c.Request.Context(), booking.ID, string(booking.Status), map[string]interface{}{
			"rideId":      booking.RideID,
			"passengerId": booking.PassengerID,
			"seatsBooked": booking.SeatsBooked,
		})

		if hub != nil {
			var passenger models.User
			db.First(&passenger, userId)
			hub.SendBookingCreated(ride.DriverID, services.BookingCreated{
				BookingID:     booking.ID,
				RideID:        booking.RideID,
				PassengerID:   booking.PassengerID,
				PassengerName: passenger.FullName(),
				SeatsBooked:   booking.SeatsBooked,
				TotalAmount:   booking.TotalAmount,
			})
		}

		c.JSON(201, gin.H{
			"message": "Booking created",
			"booking": booking,
		})
	}
}

// ConfirmBooking marks a pending booking as confirmed. Driver only.
func ConfirmBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return updateBookingStatus(db, hub, models.BookingStatusConfirmed)
}

// RejectBooking marks a pending booking as rejected. Driver only.
func RejectBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return updateBookingStatus(db, hub, models.BookingStatusRejected)
}

func updateBookingStatus(db *gorm.DB, hub *services.Hub, target models.BookingStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		role, err := rideRoleFor(db, userId, booking.RideID)
		if err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}
		if role != RideRoleDriver {
			c.JSON(403, gin.H{"error": "Only the ride's driver can manage this booking"})
			return
		}

		// Re-applying the same terminal status is a no-op success.
		if booking.Status == target {
			c.JSON(200, gin.H{"message": "Booking " + string(target)})
			return
		}
		if booking.Terminal() {
			c.JSON(400, gin.H{"error": "Booking has already been " + string(booking.Status)})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Update("status", target)
			if res.Error != nil {
				return res.Error
			}

			if target == models.BookingStatusRejected && restoreSeatsOnReject() {
				return tx.Model(&models.Ride{}).
					Where("id = ?", booking.RideID).
					Update("available_seats", gorm.Expr("available_seats + ?", booking.SeatsBooked)).Error
			}
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking status"})
			return
		}

		services.PublishBookingUpdate(c.Request.Context(), booking.ID, string(target), map[string]interface{}{
			"rideId":      booking.RideID,
			"passengerId": booking.PassengerID,
		})

		if hub != nil {
			hub.SendBookingStatusChanged(booking.PassengerID, services.BookingStatusChanged{
				BookingID: booking.ID,
				RideID:    booking.RideID,
				Status:    string(target),
			})
		}

		c.JSON(200, gin.H{"message": "Booking " + string(target)})
	}
}

// driverRideSummary is a ride row with booking aggregates
type driverRideSummary struct {
	models.Ride
	Passengers  int64 `json:"passengers"`
	SeatsBooked int64 `json:"seatsBooked"`
}

// GetDriverRides lists the caller's rides with booking counts per ride
func GetDriverRides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var rides []models.Ride
		if err := db.Where("driver_id = ?", userId).
			Order("departure_time DESC").
			Find(&rides).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch driver rides"})
			return
		}

		summaries := make([]driverRideSummary, 0, len(rides))
		if len(rides) > 0 {
			ids := make([]uint, len(rides))
			for i, ride := range rides {
				ids[i] = ride.ID
			}

			// Counts cover every booking ever made, whatever its status.
			var aggs []struct {
				RideID      uint
				Passengers  int64
				SeatsBooked int64
			}
			if err := db.Model(&models.Booking{}).
				Select("ride_id, COUNT(*) AS passengers, COALESCE(SUM(seats_booked), 0) AS seats_booked").
				Where("ride_id IN ?", ids).
				Group("ride_id").
				Scan(&aggs).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch booking counts"})
				return
			}

			byRide := make(map[uint]struct{ passengers, seats int64 }, len(aggs))
			for _, agg := range aggs {
				byRide[agg.RideID] = struct{ passengers, seats int64 }{agg.Passengers, agg.SeatsBooked}
			}

			for _, ride := range rides {
				agg := byRide[ride.ID]
				summaries = append(summaries, driverRideSummary{
					Ride:        ride,
					Passengers:  agg.passengers,
					SeatsBooked: agg.seats,
				})
			}
		}

		c.JSON(200, gin.H{"rides": summaries})
	}
}

// GetPassengerBookings lists the caller's bookings with ride and driver info
func GetPassengerBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Joins("JOIN rides ON rides.id = bookings.ride_id").
			Where("bookings.passenger_id = ?", userId).
			Order("rides.departure_time DESC").
			Preload("Ride").
			Preload("Ride.Driver").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"bookings": bookings})
	}
}

// GetRideBookings lists all booking requests on one of the caller's rides
func GetRideBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideId := c.Param("rideId")
		userId := c.GetUint("userId")

		var ride models.Ride
		if err := db.First(&ride, rideId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		role, err := rideRoleFor(db, userId, ride.ID)
		if err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}
		if role != RideRoleDriver {
			c.JSON(403, gin.H{"error": "You do not manage this ride"})
			return
		}

		var bookings []models.Booking
		if err := db.Where("ride_id = ?", ride.ID).
			Preload("Passenger").
			Order("created_at DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{
			"ride":     ride,
			"bookings": bookings,
		})
	}
}

// GetBookingContact exposes the counterpart's contact details for a booking.
// Drivers see the passenger; a confirmed passenger sees the driver.
func GetBookingContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Ride.Driver").
			Preload("Passenger").
			First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		role, err := rideRoleFor(db, userId, booking.RideID)
		if err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		var contact *models.User
		switch {
		case role == RideRoleDriver:
			contact = booking.Passenger
		case role == RideRoleConfirmedPassenger && booking.PassengerID == userId:
			contact = booking.Ride.Driver
		default:
			c.JSON(403, gin.H{"error": "You are not part of this booking"})
			return
		}

		if contact == nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{
			"name":           contact.FullName(),
			"phoneNumber":    contact.PhoneNumber,
			"profilePicture": contact.ProfilePicture,
		})
	}
}
