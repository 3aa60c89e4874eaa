package service

import (
	"fmt"

	serviceModel "tailor-booking/models/service"
)

// Request is the admin create/update payload for a catalog entry.
type Request struct {
	Name      string                       `json:"name" validate:"required,max=255"`
	Category  string                       `json:"category" validate:"required,oneof=repair jersey organizational general"`
	BasePrice float64                      `json:"base_price" validate:"min=0"`
	Unit      string                       `json:"unit,omitempty"`
	Options   serviceModel.PriceOptionList `json:"options,omitempty"`
	AddOns    serviceModel.PriceOptionList `json:"add_ons,omitempty"`
	Active    *bool                        `json:"active,omitempty"`
}

func (r Request) Validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if !serviceModel.Category(r.Category).IsValid() {
		return fmt.Sprintf("invalid category %q", r.Category)
	}
	if r.BasePrice < 0 {
		return "base_price must not be negative"
	}
	return ""
}
