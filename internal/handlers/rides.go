package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridebuddy/ridebuddy-backend/internal/models"
	"github.com/ridebuddy/ridebuddy-backend/internal/services"
	"gorm.io/gorm"
)

const departureLayout = "2006-01-02 15:04"

// normalizeSeats parses the seat-count form value. The posting form offers a
// "6+" option which maps to six seats.
func normalizeSeats(raw string) (int, error) {
	if raw == "6+" {
		return 6, nil
	}
	seats, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seats < 1 {
		return 0, errors.New("seats must be a positive number")
	}
	return seats, nil
}

// CreateRide handles the creation of a new ride by a driver
func CreateRide(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		if !c.GetBool("isDriver") {
			c.JSON(403, gin.H{"error": "Only drivers can post rides"})
			return
		}

		var input struct {
			StartLocation        string  `json:"startLocation" binding:"required"`
			Destination          string  `json:"destination" binding:"required"`
			DepartureDate        string  `json:"departureDate" binding:"required"`
			DepartureTime        string  `json:"departureTime" binding:"required"`
			ExpectedReachingTime string  `json:"expectedReachingTime"`
			Seats                string  `json:"seats" binding:"required"`
			Price                float64 `json:"price" binding:"required"`
			Notes                string  `json:"notes"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Missing required fields"})
			return
		}

		seats, err := normalizeSeats(input.Seats)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		departure, err := time.Parse(departureLayout, input.DepartureDate+" "+input.DepartureTime)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid departure date or time"})
			return
		}

		var arrival *time.Time
		if input.ExpectedReachingTime != "" {
			t, err := time.Parse(departureLayout, input.DepartureDate+" "+input.ExpectedReachingTime)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid expected reaching time"})
				return
			}
			arrival = &t
		}

		ride := models.Ride{
			DriverID:             userId,
			Origin:               input.StartLocation,
			Destination:          input.Destination,
			DepartureTime:        departure,
			EstimatedArrivalTime: arrival,
			SeatsTotal:           seats,
			AvailableSeats:       seats,
			PricePerSeat:         input.Price,
			Description:          input.Notes,
			Status:               models.RideStatusActive,
		}

		if err := db.Create(&ride).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create ride"})
			return
		}

		c.JSON(201, gin.H{
			"message": "Ride created successfully",
			"ride":    ride,
		})
	}
}

// SearchRides finds rides by origin/destination substring and departure date
func SearchRides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		from := c.Query("from")
		to := c.Query("to")
		date := c.Query("date")

		if cached, ok := services.GetCachedSearchResults(c.Request.Context(), from, to, date); ok {
			c.Data(200, "application/json; charset=utf-8", cached)
			return
		}

		query := db.Preload("Driver").
			Where("status = ?", models.RideStatusActive)

		if from != "" {
			query = query.Where("LOWER(origin) LIKE LOWER(?)", "%"+from+"%")
		}
		if to != "" {
			query = query.Where("LOWER(destination) LIKE LOWER(?)", "%"+to+"%")
		}
		if date != "" {
			query = query.Where("DATE(departure_time) = ?", date)
		}

		var rides []models.Ride
		if err := query.Order("departure_time ASC").Find(&rides).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch rides"})
			return
		}

		var averagePrice float64
		if len(rides) > 0 {
			var sum float64
			for _, ride := range rides {
				sum += ride.PricePerSeat
			}
			averagePrice = sum / float64(len(rides))
		}

		payload := gin.H{
			"rides": rides,
			"stats": gin.H{
				"total":        len(rides),
				"averagePrice": averagePrice,
			},
			"message": fmt.Sprintf("%d rides found", len(rides)),
		}

		services.CacheSearchResults(c.Request.Context(), from, to, date, payload)

		c.JSON(200, payload)
	}
}

// GetRide retrieves a single ride with its driver info
func GetRide(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideId := c.Param("id")

		var ride models.Ride
		if err := db.Preload("Driver").First(&ride, rideId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		c.JSON(200, ride)
	}
}
