package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email          string  `gorm:"uniqueIndex;not null" json:"email"`
	Password       string  `gorm:"-" json:"-"` // Temporary field for password handling
	PasswordHash   string  `gorm:"column:password_hash;not null" json:"-"`
	FirstName      string  `gorm:"column:first_name;not null" json:"firstName"`
	LastName       string  `gorm:"column:last_name" json:"lastName"`
	PhoneNumber    string  `gorm:"column:phone_number" json:"phoneNumber"`
	ProfilePicture string  `gorm:"column:profile_picture" json:"profilePicture"`
	IsDriver       bool    `gorm:"column:is_driver;not null;default:false" json:"isDriver"`
	DriverLicense  string  `gorm:"column:driver_license" json:"driverLicense,omitempty"`
	VehicleInfo    string  `gorm:"column:vehicle_info" json:"vehicleInfo,omitempty"`
	AverageRating  float64 `gorm:"column:average_rating;default:0" json:"averageRating"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
