package conversion

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	bookingModel "tailor-booking/models/booking"
	"tailor-booking/models/fulfillment"
	invoiceModel "tailor-booking/models/invoice"
	orderModel "tailor-booking/models/order"
	"tailor-booking/services/sequence"
)

// Jersey pricing applied during conversion
const (
	JerseyBasePrice  = 650.0
	PocketShortPrice = 100.0
	pocketShortLabel = "Pocket Short (+100)"
)

// Invoices issued at conversion fall due two weeks after the order is opened.
const invoiceDueDays = 14

const firstStepTime = "9:00 AM"

var (
	// ErrAlreadyConverted is returned when the booking already has an order
	ErrAlreadyConverted = errors.New("booking has already been converted to an order")
	// ErrMissingDetails is returned when the variant payload is absent
	ErrMissingDetails = errors.New("booking is missing its detail payload")
)

// Input carries the staff-supplied parameters of a conversion.
type Input struct {
	EstimatedCompletion *time.Time
	AssignedTailor      string
}

// Result is what a successful conversion produced.
type Result struct {
	Order   *orderModel.Order
	Invoice *invoiceModel.Invoice
}

// Convert turns an approved booking into exactly one order plus one invoice.
// The order insert, the booking back-reference update and the invoice insert
// all run inside one transaction; a failure anywhere rolls back everything.
func Convert(db *gorm.DB, bookingID uint, in Input) (*Result, error) {
	var result Result

	err := db.Transaction(func(tx *gorm.DB) error {
		var b bookingModel.Booking
		if err := tx.First(&b, bookingID).Error; err != nil {
			return err
		}

		if b.IsConverted() {
			return ErrAlreadyConverted
		}

		item, serviceType, steps, players, err := deriveOrderFields(&b)
		if err != nil {
			return err
		}

		// First stage is completed the moment staff accept the drop-off
		steps[0].Done = true
		steps[0].Date = time.Now().Format("2006-01-02")
		steps[0].Time = firstStepTime

		orderNumber, err := sequence.NextOrderNumber(tx)
		if err != nil {
			return err
		}

		ord := orderModel.Order{
			OrderNumber:         orderNumber,
			Item:                item,
			CustomerName:        b.ContactName,
			OrderDate:           time.Now(),
			EstimatedCompletion: in.EstimatedCompletion,
			AssignedTailor:      in.AssignedTailor,
			ServiceType:         serviceType,
			Status:              orderModel.StatusInProgress,
			Steps:               steps,
			Players:             players,
			UserID:              b.UserID,
			BookingID:           &b.ID,
		}

		if err := tx.Create(&ord).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		b.OrderID = &ord.ID
		b.Status = bookingModel.StatusApproved
		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		invoiceNumber, err := sequence.NextInvoiceNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		inv := invoiceModel.Invoice{
			InvoiceNumber: invoiceNumber,
			IssueDate:     now,
			DueDate:       now.AddDate(0, 0, invoiceDueDays),
			BillTo: &invoiceModel.BillTo{
				Name:    b.ContactName,
				Phone:   b.Phone,
				Email:   b.Email,
				Address: b.Address,
				City:    b.City,
			},
			Items:   buildLineItems(&b),
			Status:  invoiceModel.StatusPending,
			UserID:  b.UserID,
			OrderID: ord.ID,
		}

		// Totals are filled in by the invoice's BeforeSave hook
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		result.Order = &ord
		result.Invoice = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func deriveOrderFields(b *bookingModel.Booking) (string, orderModel.ServiceType, fulfillment.StepList, fulfillment.PlayerList, error) {
	switch b.BookingType {
	case bookingModel.TypeRepair:
		if b.Repair == nil {
			return "", "", nil, nil, ErrMissingDetails
		}
		return "Repair - " + b.Repair.Service, orderModel.ServiceTypeRepair, fulfillment.RepairSteps(), nil, nil

	case bookingModel.TypeJersey:
		if b.Jersey == nil {
			return "", "", nil, nil, ErrMissingDetails
		}
		return "Team Jersey - " + b.Jersey.TeamName, orderModel.ServiceTypeTeamJersey, fulfillment.FullSteps(), fulfillment.PlayerList(b.Jersey.Players), nil

	case bookingModel.TypeOrganizational:
		if b.Organizational == nil {
			return "", "", nil, nil, ErrMissingDetails
		}
		return "Organizational - " + b.Organizational.OrgName, orderModel.ServiceTypeCustom, fulfillment.FullSteps(), fulfillment.PlayerList(b.Organizational.Members), nil

	default:
		return "", "", nil, nil, fmt.Errorf("unknown booking type %q", b.BookingType)
	}
}

func buildLineItems(b *bookingModel.Booking) invoiceModel.LineItemList {
	switch b.BookingType {
	case bookingModel.TypeJersey, bookingModel.TypeOrganizational:
		var players []fulfillment.Player
		if b.BookingType == bookingModel.TypeJersey {
			players = b.Jersey.Players
		} else {
			players = b.Organizational.Members
		}

		items := make(invoiceModel.LineItemList, 0, len(players))
		for _, p := range players {
			item := invoiceModel.LineItem{
				Description: fmt.Sprintf("Jersey (%s #%s)", p.Name, p.Number),
				Type:        invoiceModel.ItemTypeCustom,
				Quantity:    1,
				UnitPrice:   JerseyBasePrice,
				Size:        p.Size,
				AddOn:       "None",
			}
			if p.PocketShorts {
				item.AddOn = pocketShortLabel
				item.AddOnPrice = PocketShortPrice
			}
			items = append(items, item)
		}
		return items

	case bookingModel.TypeRepair:
		items := make(invoiceModel.LineItemList, 0, len(b.Repair.Options))
		for _, opt := range b.Repair.Options {
			qty := opt.Quantity
			if qty <= 0 {
				qty = 1
			}
			items = append(items, invoiceModel.LineItem{
				Description: b.Repair.Service + " - " + opt.Name,
				Type:        invoiceModel.ItemTypeRepair,
				Quantity:    qty,
				UnitPrice:   opt.Price,
			})
		}
		return items
	}

	return nil
}
