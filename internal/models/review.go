package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	RideID     uint   `json:"rideId" gorm:"not null;index"`
	Ride       *Ride  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ReviewerID uint   `json:"reviewerId" gorm:"not null"`
	Reviewer   *User  `json:"-" gorm:"foreignKey:ReviewerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	RevieweeID uint   `json:"revieweeId" gorm:"not null;index"`
	Reviewee   *User  `json:"-" gorm:"foreignKey:RevieweeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rating     int    `json:"rating" gorm:"not null"`
	Comment    string `json:"comment"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}
