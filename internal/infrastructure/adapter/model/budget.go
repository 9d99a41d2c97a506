package model

import (
	"time"
)

// Budget represents the database model for category budgets. The unique
// index enforces one budget per (user, category, period).
type Budget struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_budget_user_category_period,priority:1"`
	Category   string    `gorm:"not null;size:128;uniqueIndex:idx_budget_user_category_period,priority:2"`
	LimitCents int64     `gorm:"not null"`
	Period     string    `gorm:"not null;size:16;uniqueIndex:idx_budget_user_category_period,priority:3"`
	CreatedAt  time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Budget
func (Budget) TableName() string {
	return "budgets"
}
