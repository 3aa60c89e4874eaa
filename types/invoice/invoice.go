package invoice

import (
	"fmt"

	invoiceModel "tailor-booking/models/invoice"
)

// CreateRequest is the manual invoice creation payload. Totals are never
// accepted from the client; they are always computed server side.
type CreateRequest struct {
	OrderID  uint                      `json:"order_id" validate:"required"`
	DueDate  string                    `json:"due_date,omitempty"`
	BillTo   *invoiceModel.BillTo      `json:"bill_to,omitempty"`
	Items    invoiceModel.LineItemList `json:"items" validate:"required,min=1"`
	TaxRate  *float64                  `json:"tax_rate,omitempty"`
	Discount *invoiceModel.Discount    `json:"discount,omitempty"`
}

func (r CreateRequest) Validate() string {
	if r.OrderID == 0 {
		return "order_id is required"
	}
	if len(r.Items) == 0 {
		return "items must contain at least one line item"
	}
	for i, item := range r.Items {
		if item.Description == "" {
			return fmt.Sprintf("items[%d].description is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Sprintf("items[%d].quantity must be positive", i)
		}
		if !item.Type.IsValid() {
			return fmt.Sprintf("items[%d].type %q is not valid", i, item.Type)
		}
	}
	return ""
}

// UpdateRequest edits line items and billing parameters of an invoice.
type UpdateRequest struct {
	DueDate  string                    `json:"due_date,omitempty"`
	BillTo   *invoiceModel.BillTo      `json:"bill_to,omitempty"`
	Items    invoiceModel.LineItemList `json:"items,omitempty"`
	TaxRate  *float64                  `json:"tax_rate,omitempty"`
	Discount *invoiceModel.Discount    `json:"discount,omitempty"`
}

// UpdateStatusRequest transitions invoice status, typically to Paid.
type UpdateStatusRequest struct {
	Status  string                `json:"status" validate:"required"`
	Payment *invoiceModel.Payment `json:"payment,omitempty"`
}

func (r UpdateStatusRequest) Validate() string {
	if !invoiceModel.InvoiceStatus(r.Status).IsValid() {
		return fmt.Sprintf("invalid invoice status %q", r.Status)
	}
	return ""
}
