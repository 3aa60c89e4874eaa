package order

import (
	"fmt"
	"time"

	"tailor-booking/models/fulfillment"
	"tailor-booking/models/user"
)

// Order is a staff-confirmed unit of work with a tracked fulfillment
// pipeline. Orders are only created by converting a booking.
type Order struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Human-readable id, e.g. ORD-2026-014, issued by the sequence service
	OrderNumber string `gorm:"type:varchar(30);not null;unique" json:"order_number"`

	Item         string `gorm:"type:varchar(255);not null" json:"item"`
	CustomerName string `gorm:"type:varchar(255)" json:"customer_name"`

	OrderDate           time.Time  `json:"order_date"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	AssignedTailor      string     `gorm:"type:varchar(255)" json:"assigned_tailor"`

	ServiceType ServiceType `gorm:"type:varchar(30);not null" json:"service_type"`
	Status      OrderStatus `gorm:"type:varchar(30);not null;default:'Pending'" json:"status"`

	Steps   fulfillment.StepList   `gorm:"type:json" json:"steps"`
	Players fulfillment.PlayerList `gorm:"type:json" json:"players,omitempty"`

	UserID *uint      `gorm:"index" json:"user_id,omitempty"`
	User   *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Back-reference to the originating booking
	BookingID *uint `gorm:"index" json:"booking_id,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// ApplyStep advances the pipeline to stepIndex: earlier steps are marked
// done, the addressed step becomes the single active one, later steps are
// reset. Reaching the last step completes the order.
func (o *Order) ApplyStep(stepIndex int, date, timeOfDay string) error {
	if stepIndex < 0 || stepIndex >= len(o.Steps) {
		return fmt.Errorf("step index %d out of range, order has %d steps", stepIndex, len(o.Steps))
	}

	for i := range o.Steps {
		switch {
		case i < stepIndex:
			o.Steps[i].Done = true
			o.Steps[i].Active = false
		case i == stepIndex:
			o.Steps[i].Done = false
			o.Steps[i].Active = true
			if date != "" {
				o.Steps[i].Date = date
			}
			if timeOfDay != "" {
				o.Steps[i].Time = timeOfDay
			}
		default:
			o.Steps[i].Done = false
			o.Steps[i].Active = false
		}
	}

	if stepIndex == len(o.Steps)-1 {
		o.Status = StatusCompleted
	}

	return nil
}
