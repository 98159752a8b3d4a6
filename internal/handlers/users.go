package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridebuddy/ridebuddy-backend/internal/models"
	"github.com/ridebuddy/ridebuddy-backend/internal/services"
	"gorm.io/gorm"
)

type recentRide struct {
	BookingID     uint      `json:"bookingId"`
	Pickup        string    `json:"pickup"`
	Dropoff       string    `json:"dropoff"`
	DepartureTime time.Time `json:"departureTime"`
	Role          string    `json:"role"`
}

// GetProfile retrieves the user's profile with their most recent rides
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		var recent []recentRide
		db.Table("bookings").
			Select("bookings.id AS booking_id, rides.origin AS pickup, rides.destination AS dropoff, rides.departure_time, "+
				"CASE WHEN rides.driver_id = ? THEN 'Driver' ELSE 'Passenger' END AS role", userId).
			Joins("JOIN rides ON rides.id = bookings.ride_id").
			Where("rides.driver_id = ? OR bookings.passenger_id = ?", userId, userId).
			Order("rides.departure_time DESC").
			Limit(5).
			Scan(&recent)

		c.JSON(200, gin.H{
			"user":        user,
			"recentRides": recent,
		})
	}
}

// UpdateProfile updates the user's profile information
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			FirstName     *string `json:"firstName"`
			LastName      *string `json:"lastName"`
			PhoneNumber   *string `json:"phoneNumber"`
			DriverLicense *string `json:"driverLicense"`
			VehicleInfo   *string `json:"vehicleInfo"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		// Update fields individually to handle empty strings properly
		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.DriverLicense != nil {
			user.DriverLicense = *input.DriverLicense
		}
		if input.VehicleInfo != nil {
			user.VehicleInfo = *input.VehicleInfo
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{"user": user})
	}
}

// UploadProfilePicture stores a new profile picture and saves its URL
func UploadProfilePicture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		file, err := c.FormFile("picture")
		if err != nil {
			c.JSON(400, gin.H{"error": "Picture file is required"})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		url, err := services.UploadImage(file, "profiles")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload picture"})
			return
		}

		user.ProfilePicture = url
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{"profilePicture": url})
	}
}
