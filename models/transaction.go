package models

import "time"

// Transaction represents a single expense belonging to a user.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	UserID      uint            `gorm:"index;not null" json:"userId"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"size:16;not null;default:OFFLINE" json:"transactionType"`
	Category    Category        `gorm:"size:32;not null" json:"category"`
	Description string          `gorm:"size:512;not null" json:"description"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
}
