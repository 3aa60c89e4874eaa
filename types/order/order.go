package order

import (
	"fmt"

	orderModel "tailor-booking/models/order"
)

// UpdateRequest is the staff/admin edit payload for order tracking fields.
// Status here bypasses the step machinery on purpose; see the controller.
type UpdateRequest struct {
	Item                string `json:"item,omitempty"`
	AssignedTailor      string `json:"assigned_tailor,omitempty"`
	EstimatedCompletion string `json:"estimated_completion,omitempty"`
	ServiceType         string `json:"service_type,omitempty"`
	Status              string `json:"status,omitempty"`
}

func (r UpdateRequest) Validate() string {
	if r.Status != "" && !orderModel.OrderStatus(r.Status).IsValid() {
		return fmt.Sprintf("invalid order status %q", r.Status)
	}
	if r.ServiceType != "" && !orderModel.ServiceType(r.ServiceType).IsValid() {
		return fmt.Sprintf("invalid service type %q", r.ServiceType)
	}
	return ""
}

// UpdateStepsRequest advances the fulfillment pipeline to StepIndex.
type UpdateStepsRequest struct {
	StepIndex *int   `json:"step_index" validate:"required,min=0"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

func (r UpdateStepsRequest) Validate() string {
	if r.StepIndex == nil {
		return "step_index is required"
	}
	if *r.StepIndex < 0 {
		return "step_index must not be negative"
	}
	return ""
}
