package model

import (
	"time"
)

// TxTemplate represents the database model for reusable transaction
// blueprints
type TxTemplate struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index"`
	Title       string    `gorm:"not null;size:255"`
	Type        string    `gorm:"not null;size:16"`
	AmountCents int64     `gorm:"not null"`
	Category    string    `gorm:"size:128"`
	Description string    `gorm:"type:text"`
	CardUID     string    `gorm:"size:64"`
	CreatedAt   time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for TxTemplate
func (TxTemplate) TableName() string {
	return "tx_templates"
}
