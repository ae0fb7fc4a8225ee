package models

import (
	"time"
)

// User model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;unique" json:"email"`
	PasswordHash []byte    `gorm:"not null" json:"-"`
	// MonthlyBudget is a single flat ceiling applied uniformly across months.
	MonthlyBudget float64 `gorm:"not null;default:3000" json:"monthly_budget"`
	// Expense caches the current-month total. Written only by the explicit
	// recompute operation, never as a side effect of a read.
	Expense      float64       `gorm:"not null;default:0" json:"expense"`
	Transactions []Transaction `json:"-"`
	Budgets      []Budget      `json:"-"`
}
