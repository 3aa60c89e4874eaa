package appointment

import (
	"fmt"

	appointmentModel "tailor-booking/models/appointment"
)

// CreateRequest books one of the fixed daily slots.
type CreateRequest struct {
	Service string `json:"service" validate:"required,max=255"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Notes   string `json:"notes,omitempty"`
}

func (r CreateRequest) Validate() string {
	if r.Service == "" {
		return "service is required"
	}
	if r.Date == "" {
		return "date is required"
	}
	if !appointmentModel.IsValidSlot(r.Time) {
		return fmt.Sprintf("time must be one of the fixed slots, got %q", r.Time)
	}
	return ""
}

// UpdateRequest reschedules or annotates an appointment.
type UpdateRequest struct {
	Service string `json:"service,omitempty"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (r UpdateRequest) Validate() string {
	if r.Time != "" && !appointmentModel.IsValidSlot(r.Time) {
		return fmt.Sprintf("time must be one of the fixed slots, got %q", r.Time)
	}
	return ""
}

// UpdateStatusRequest changes appointment status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r UpdateStatusRequest) Validate() string {
	switch r.Status {
	case appointmentModel.StatusScheduled, appointmentModel.StatusCompleted, appointmentModel.StatusCancelled:
		return ""
	default:
		return fmt.Sprintf("invalid appointment status %q", r.Status)
	}
}

// SlotAvailability describes one fixed slot on a given day.
type SlotAvailability struct {
	Time      string `json:"time"`
	Booked    int64  `json:"booked"`
	Available bool   `json:"available"`
}
