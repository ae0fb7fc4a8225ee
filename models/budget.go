package models

import "time"

// Budget is a user-set ceiling amount for a single category. At most one
// row exists per (user, category); the handler upserts rather than relying
// on a database constraint.
type Budget struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Category  Category  `gorm:"size:32;not null" json:"category"`
	Amount    float64   `gorm:"not null" json:"amount"`
}
