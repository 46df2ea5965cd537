package models

import (
	"time"
)

// Transaction is a directed value transfer between two accounts. Records are
// immutable once stored: the fraud risk score is assigned exactly once, at
// creation, before the row is written.
type Transaction struct {
	ID             uint      `gorm:"primarykey"`
	SenderID       uint      `gorm:"not null;index"`
	ReceiverID     uint      `gorm:"not null;index"`
	Amount         float64   `gorm:"not null"`
	Timestamp      time.Time `gorm:"not null;index"`
	FraudRiskScore int       `gorm:"not null;default:0"`
	Reference      string    // External reference ID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
