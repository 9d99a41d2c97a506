package model

import (
	"time"
)

// Goal represents the database model for savings goals. The saved amount
// is never stored; it is a SUM over goal_contributions.
type Goal struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement"`
	UserID      uint64     `gorm:"not null;index"`
	Title       string     `gorm:"not null;size:255"`
	TargetCents int64      `gorm:"not null"`
	Deadline    *time.Time `gorm:"null"`
	CreatedAt   time.Time  `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Goal
func (Goal) TableName() string {
	return "goals"
}

// GoalContribution represents the database model for deposits toward a
// goal. TxID links the EXPENSE row that debited the funding pool, if one
// was created.
type GoalContribution struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index"`
	GoalID      uint64    `gorm:"not null;index"`
	AmountCents int64     `gorm:"not null"`
	OccurredAt  time.Time `gorm:"not null"`
	TxID        *uint64   `gorm:"null"`

	Goal Goal `gorm:"foreignKey:GoalID;references:ID"`
}

// TableName specifies the table name for GoalContribution
func (GoalContribution) TableName() string {
	return "goal_contributions"
}
