package model

import (
	"time"
)

// Transaction represents the database model for ledger rows. AmountCents
// carries the sign; every balance in the system is a SUM over this table.
// Rows are inserted and deleted, never updated.
type Transaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index:idx_tx_user_occurred,priority:1"`
	CardID      *uint64   `gorm:"null;index"`
	AmountCents int64     `gorm:"not null"`
	Type        string    `gorm:"not null;size:16"`
	Category    string    `gorm:"size:128;index"`
	Description string    `gorm:"type:text"`
	OccurredAt  time.Time `gorm:"not null;index:idx_tx_user_occurred,priority:2"`
	IsMock      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`

	User User  `gorm:"foreignKey:UserID;references:ID"`
	Card *Card `gorm:"foreignKey:CardID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
