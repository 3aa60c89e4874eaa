package booking

// BookingType selects the variant payload of a booking
type BookingType string

const (
	TypeRepair         BookingType = "repair"
	TypeJersey         BookingType = "jersey"
	TypeOrganizational BookingType = "organizational"
)

func (bt BookingType) String() string {
	return string(bt)
}

func (bt BookingType) IsValid() bool {
	switch bt {
	case TypeRepair, TypeJersey, TypeOrganizational:
		return true
	default:
		return false
	}
}

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "Pending"
	StatusApproved   BookingStatus = "Approved"
	StatusInProgress BookingStatus = "In Progress"
	StatusCompleted  BookingStatus = "Completed"
	StatusCancelled  BookingStatus = "Cancelled"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case StatusPending, StatusApproved, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once the booking can no longer change state
func (bs BookingStatus) IsTerminal() bool {
	return bs == StatusCompleted || bs == StatusCancelled
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending,
		StatusApproved,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
	}
}
