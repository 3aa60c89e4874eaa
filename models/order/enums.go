package order

// ServiceType classifies the work an order carries
type ServiceType string

const (
	ServiceTypeCustom     ServiceType = "Custom"
	ServiceTypeRepair     ServiceType = "Repair"
	ServiceTypeTeamJersey ServiceType = "Team Jersey"
	ServiceTypeService    ServiceType = "Service"
)

func (st ServiceType) IsValid() bool {
	switch st {
	case ServiceTypeCustom, ServiceTypeRepair, ServiceTypeTeamJersey, ServiceTypeService:
		return true
	default:
		return false
	}
}

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProgress OrderStatus = "In Progress"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (os OrderStatus) String() string {
	return string(os)
}

func (os OrderStatus) IsValid() bool {
	switch os {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for states that permit no further transitions
func (os OrderStatus) IsTerminal() bool {
	return os == StatusCompleted || os == StatusCancelled
}

// CanBeCancelled reports whether a cancel request is still allowed
func (os OrderStatus) CanBeCancelled() bool {
	return !os.IsTerminal()
}
