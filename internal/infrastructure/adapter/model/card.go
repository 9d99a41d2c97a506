package model

import (
	"time"
)

// Card represents the database model for linked cards. No balance column
// exists; card balances are sums over transactions. The row is the lock
// anchor for its pool.
type Card struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index"`
	CardUID     string    `gorm:"uniqueIndex;not null;size:64"`
	Mask        string    `gorm:"not null;size:32"`
	Last4       string    `gorm:"not null;size:4"`
	ExpiryMonth *int      `gorm:"null"`
	ExpiryYear  *int      `gorm:"null"`
	Nickname    string    `gorm:"not null;size:255"`
	Currency    string    `gorm:"not null;size:8"`
	IsMock      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
