package invoice

// ItemType classifies a line item
type ItemType string

const (
	ItemTypeService ItemType = "Service"
	ItemTypeCustom  ItemType = "Custom"
	ItemTypeRepair  ItemType = "Repair"
)

func (it ItemType) IsValid() bool {
	switch it {
	case ItemTypeService, ItemTypeCustom, ItemTypeRepair:
		return true
	default:
		return false
	}
}

// InvoiceStatus is the billing state of an invoice
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "Pending"
	StatusPaid    InvoiceStatus = "Paid"
	StatusOverdue InvoiceStatus = "Overdue"
)

func (is InvoiceStatus) String() string {
	return string(is)
}

func (is InvoiceStatus) IsValid() bool {
	switch is {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	default:
		return false
	}
}
