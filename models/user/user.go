package user

import (
	"time"

	"tailor-booking/constants"
)

// User model. PasswordHash is nil for accounts created through Google
// sign-in; those users authenticate with their federated identity only.
type User struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Email         string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash  *string `gorm:"type:varchar(255)" json:"-"`
	FullName      string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Role          string  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	EmailVerified bool    `gorm:"type:bool;default:false" json:"email_verified"`
	Phone         *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address       *string `gorm:"type:varchar(255)" json:"address,omitempty"`
	City          *string `gorm:"type:varchar(100)" json:"city,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// IsElevated reports whether the user may act on records owned by others.
func (u *User) IsElevated() bool {
	return u.Role == constants.RoleStaff || u.Role == constants.RoleAdmin
}

// IsAdmin reports whether the user may perform destructive operations.
func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
