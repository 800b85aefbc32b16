package domain

import "time"

// Defaults applied to every new account
const (
	DefaultCredits = 15         // Starting balance for a new account
	DefaultPlan    = "commoner" // Starting plan tag
)

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                                                    // Primary key
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`                              // Unique, normalised email
	PasswordHash string    `gorm:"size:255;not null" json:"-"`                                              // bcrypt password hash
	APIKey       string    `gorm:"size:64;uniqueIndex;not null" json:"-"`                                   // Bearer credential
	Credits      int       `gorm:"not null;default:15;check:chk_users_credits,credits >= 0" json:"credits"` // Credit balance, never negative
	Plan         string    `gorm:"size:32;not null;default:commoner" json:"plan"`                           // Plan tag
	CreatedAt    time.Time `json:"created_at"`                                                              // Creation timestamp
}
