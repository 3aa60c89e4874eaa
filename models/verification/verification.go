package verification

import (
	"time"
)

// Code is a short-lived numeric code mailed to a user. The code itself is
// stored encrypted at rest; see services/verification.
type Code struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string     `gorm:"type:varchar(255);not null;index" json:"email"`
	CodeEncrypted string     `gorm:"type:varchar(255);not null" json:"-"`
	Purpose       Purpose    `gorm:"type:varchar(50);not null" json:"purpose"`
	IsUsed        bool       `gorm:"default:false" json:"is_used"`
	RetryCount    int        `gorm:"default:0" json:"retry_count"`
	MaxRetries    int        `gorm:"default:3" json:"max_retries"`
	IsBlocked     bool       `gorm:"default:false" json:"is_blocked"`
	BlockedUntil  *time.Time `gorm:"index" json:"blocked_until,omitempty"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	ExpiresAt     time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Purpose represents what the code authorizes
type Purpose string

const (
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// IsExpired checks if the code has expired
func (c *Code) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// IsValid checks if the code is usable (not used, expired or blocked)
func (c *Code) IsValid() bool {
	return !c.IsUsed && !c.IsExpired() && !c.IsBlocked
}

// IsCurrentlyBlocked checks if verification attempts are blocked right now
func (c *Code) IsCurrentlyBlocked() bool {
	if !c.IsBlocked {
		return false
	}

	// Nil BlockedUntil means permanently blocked
	if c.BlockedUntil == nil {
		return true
	}

	return time.Now().Before(*c.BlockedUntil)
}

// IncrementRetry counts a failed attempt and blocks once retries run out
func (c *Code) IncrementRetry() {
	now := time.Now()
	c.RetryCount++
	c.LastAttemptAt = &now

	if c.RetryCount >= c.MaxRetries {
		c.IsBlocked = true
		blockUntil := now.Add(15 * time.Minute)
		c.BlockedUntil = &blockUntil
	}
}
