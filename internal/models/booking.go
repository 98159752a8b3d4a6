package models

import (
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Booking struct {
	gorm.Model
	RideID        uint          `json:"rideId" gorm:"not null;index"`
	Ride          *Ride         `json:"ride,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PassengerID   uint          `json:"passengerId" gorm:"not null;index"`
	Passenger     *User         `json:"passenger,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SeatsBooked   int           `json:"seatsBooked" gorm:"not null"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount   float64       `json:"totalAmount" gorm:"not null"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'unpaid'"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// Terminal reports whether the booking has reached a final status.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusRejected
}
