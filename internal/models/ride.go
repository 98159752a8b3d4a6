package models

import (
	"time"

	"gorm.io/gorm"
)

type RideStatus string

const (
	RideStatusActive   RideStatus = "active"
	RideStatusInactive RideStatus = "inactive"
)

type Ride struct {
	gorm.Model
	DriverID             uint       `json:"driverId" gorm:"not null;index"`
	Driver               *User      `json:"driver,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Origin               string     `json:"origin" gorm:"not null"`
	Destination          string     `json:"destination" gorm:"not null"`
	DepartureTime        time.Time  `json:"departureTime" gorm:"not null"`
	EstimatedArrivalTime *time.Time `json:"estimatedArrivalTime,omitempty"`
	SeatsTotal           int        `json:"seatsTotal" gorm:"not null"`
	AvailableSeats       int        `json:"availableSeats" gorm:"not null"`
	PricePerSeat         float64    `json:"pricePerSeat" gorm:"not null"`
	Description          string     `json:"description"`
	Status               RideStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName specifies the table name
func (Ride) TableName() string {
	return "rides"
}
