package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is an append-only chat log entry between a ride's driver and a
// confirmed passenger. Storage only.
type Message struct {
	gorm.Model
	RideID     uint      `json:"rideId" gorm:"not null;index"`
	Ride       *Ride     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SenderID   uint      `json:"senderId" gorm:"not null"`
	Sender     *User     `json:"-" gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ReceiverID uint      `json:"receiverId" gorm:"not null"`
	Receiver   *User     `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	SentAt     time.Time `json:"sentAt" gorm:"not null"`
}

// TableName specifies the table name
func (Message) TableName() string {
	return "messages"
}
