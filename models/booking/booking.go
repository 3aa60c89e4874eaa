package booking

import (
	"time"

	"tailor-booking/models/fulfillment"
	"tailor-booking/models/user"
)

// Booking is a customer-submitted request. Exactly one of the variant
// payloads (Repair, Jersey, Organizational) is set, selected by BookingType.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Owner is nullable: bookings survive if the submitting account goes away
	UserID *uint      `gorm:"index" json:"user_id,omitempty"`
	User   *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	BookingType BookingType `gorm:"type:varchar(30);not null;index" json:"booking_type"`

	Repair         *RepairDetails `gorm:"type:json" json:"repair,omitempty"`
	Jersey         *JerseyDetails `gorm:"type:json" json:"jersey,omitempty"`
	Organizational *OrgDetails    `gorm:"type:json" json:"organizational,omitempty"`

	// Contact block, snapshotted onto the invoice at conversion time
	ContactName string `gorm:"type:varchar(255);not null" json:"contact_name"`
	Phone       string `gorm:"type:varchar(20);not null" json:"phone"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Address     string `gorm:"type:text" json:"address"`
	City        string `gorm:"type:varchar(100)" json:"city"`

	PickupDate *time.Time `json:"pickup_date,omitempty"`
	PickupSlot string     `gorm:"type:varchar(50)" json:"pickup_slot"`

	Steps fulfillment.StepList `gorm:"type:json" json:"steps"`

	Status     BookingStatus `gorm:"type:varchar(30);not null;default:'Pending'" json:"status"`
	AdminNotes string        `gorm:"type:text" json:"admin_notes"`

	// Set once when the booking is converted; a booking is converted at most once
	OrderID *uint `gorm:"index" json:"order_id,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// IsConverted reports whether an order was already produced from this booking.
func (b *Booking) IsConverted() bool {
	return b.OrderID != nil
}
