package booking

import (
	"fmt"

	bookingModel "tailor-booking/models/booking"
	"tailor-booking/models/fulfillment"
)

// CreateRequest is the multi-step booking form payload. The variant block
// matching BookingType must be present; the other two must be absent.
type CreateRequest struct {
	BookingType string `json:"booking_type" validate:"required,oneof=repair jersey organizational"`

	Repair         *bookingModel.RepairDetails `json:"repair,omitempty"`
	Jersey         *bookingModel.JerseyDetails `json:"jersey,omitempty"`
	Organizational *bookingModel.OrgDetails    `json:"organizational,omitempty"`

	ContactName string `json:"contact_name" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"omitempty"`
	City        string `json:"city" validate:"omitempty,max=100"`

	PickupDate string `json:"pickup_date" validate:"omitempty"`
	PickupSlot string `json:"pickup_slot" validate:"omitempty,max=50"`
}

func (r CreateRequest) Validate() string {
	if !bookingModel.BookingType(r.BookingType).IsValid() {
		return fmt.Sprintf("booking_type must be one of repair, jersey, organizational; got %q", r.BookingType)
	}
	if r.ContactName == "" {
		return "contact_name is required"
	}
	if r.Phone == "" {
		return "phone is required"
	}

	switch bookingModel.BookingType(r.BookingType) {
	case bookingModel.TypeRepair:
		if r.Repair == nil {
			return "repair details are required for a repair booking"
		}
		if r.Repair.Service == "" {
			return "repair.service is required"
		}
		if len(r.Repair.Options) == 0 {
			return "repair.options must contain at least one selection"
		}
	case bookingModel.TypeJersey:
		if r.Jersey == nil {
			return "jersey details are required for a jersey booking"
		}
		if r.Jersey.TeamName == "" {
			return "jersey.team_name is required"
		}
		if len(r.Jersey.Players) == 0 {
			return "jersey.players must contain at least one player"
		}
	case bookingModel.TypeOrganizational:
		if r.Organizational == nil {
			return "organizational details are required for an organizational booking"
		}
		if r.Organizational.OrgName == "" {
			return "organizational.org_name is required"
		}
		if len(r.Organizational.Members) == 0 {
			return "organizational.members must contain at least one member"
		}
	}

	return ""
}

// UpdateRequest carries the fields an owner may edit before conversion.
type UpdateRequest struct {
	Repair         *bookingModel.RepairDetails `json:"repair,omitempty"`
	Jersey         *bookingModel.JerseyDetails `json:"jersey,omitempty"`
	Organizational *bookingModel.OrgDetails    `json:"organizational,omitempty"`

	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`

	PickupDate string `json:"pickup_date,omitempty"`
	PickupSlot string `json:"pickup_slot,omitempty"`

	Steps fulfillment.StepList `json:"steps,omitempty"`
}

// UpdateStatusRequest sets booking status and admin notes; staff/admin only.
type UpdateStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

func (r UpdateStatusRequest) Validate() string {
	if !bookingModel.BookingStatus(r.Status).IsValid() {
		return fmt.Sprintf("status must be one of %v", bookingModel.GetAllBookingStatuses())
	}
	return ""
}

// ConvertRequest carries the staff-supplied conversion parameters.
type ConvertRequest struct {
	EstimatedCompletion string `json:"estimated_completion,omitempty"`
	AssignedTailor      string `json:"assigned_tailor,omitempty"`
}
