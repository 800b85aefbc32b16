package domain

import "time"

// Action labels recorded on transactions
const (
	ActionReview   = "review"    // Review lookup
	ActionInfo     = "info"      // Book information lookup
	ActionSimilar  = "similar"   // Books by the same author
	ActionAdminAdd = "admin_add" // Administrative credit grant
	ActionUnknown  = "unknown"   // Deduction without a label
)

// Transaction Model, one row per balance mutation
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                 // Primary key, creation order
	UserID    uint      `gorm:"index;not null" json:"user_id"`        // Foreign key to User
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Owning user
	Amount    int       `gorm:"not null" json:"amount"`               // Negative for spend, positive for grants
	Action    string    `gorm:"size:32;not null" json:"action"`       // Action label
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`      // Creation time
}
