package appointment

import (
	"time"

	"tailor-booking/models/user"
)

// Appointment statuses
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// DailyCapacity is the total number of appointments accepted per day.
const DailyCapacity = 10

// Slots are the fixed hourly windows offered to customers, 9 AM to 5 PM.
var Slots = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
	"5:00 PM",
}

// IsValidSlot reports whether timeSlot is one of the fixed windows.
func IsValidSlot(timeSlot string) bool {
	for _, s := range Slots {
		if s == timeSlot {
			return true
		}
	}
	return false
}

// Appointment is a standalone scheduling record. OrderID exists for linking
// an appointment to an order but no handler populates it yet.
type Appointment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID *uint      `gorm:"index" json:"user_id,omitempty"`
	User   *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Service string    `gorm:"type:varchar(255);not null" json:"service"`
	Date    time.Time `gorm:"not null;index" json:"date"`
	Time    string    `gorm:"type:varchar(20);not null" json:"time"`
	Status  string    `gorm:"type:varchar(20);not null;default:'Scheduled'" json:"status"`
	Notes   string    `gorm:"type:text" json:"notes"`

	OrderID *uint `gorm:"index" json:"order_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
