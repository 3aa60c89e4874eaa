package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"tailor-booking/models/user"
)

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}

	return json.Unmarshal(bytes, dest)
}

// LineItem is one billable entry on an invoice
type LineItem struct {
	Description string   `json:"description"`
	Type        ItemType `json:"type"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	Size        string   `json:"size,omitempty"`
	AddOn       string   `json:"add_on,omitempty"`
	AddOnPrice  float64  `json:"add_on_price,omitempty"`
}

// LineItemList is stored as a JSON column
type LineItemList []LineItem

func (ll *LineItemList) Scan(value interface{}) error {
	return scanJSON(value, ll)
}

func (ll LineItemList) Value() (driver.Value, error) {
	if ll == nil {
		return nil, nil
	}
	return json.Marshal(ll)
}

// BillTo is the billing address block snapshotted from the booking contact
type BillTo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

func (b *BillTo) Scan(value interface{}) error {
	return scanJSON(value, b)
}

func (b BillTo) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Discount is a flat amount taken off the invoice total
type Discount struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

func (d *Discount) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func (d Discount) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Payment records how a paid invoice was settled
type Payment struct {
	Method        string     `json:"method"`
	TransactionID string     `json:"transaction_id,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
}

func (p *Payment) Scan(value interface{}) error {
	return scanJSON(value, p)
}

func (p Payment) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Invoice is a billing record, linked to exactly one order. Subtotal, Tax
// and Total are never authoritative on their own: every save recomputes them
// from Items, TaxRate and Discount.
type Invoice struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Human-readable id, e.g. INV-2026-014, issued by the sequence service
	InvoiceNumber string `gorm:"type:varchar(30);not null;unique" json:"invoice_number"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	BillTo *BillTo      `gorm:"type:json" json:"bill_to,omitempty"`
	Items  LineItemList `gorm:"type:json" json:"items"`

	TaxRate  *float64  `json:"tax_rate,omitempty"`
	Discount *Discount `gorm:"type:json" json:"discount,omitempty"`

	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Status  InvoiceStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Payment *Payment      `gorm:"type:json" json:"payment,omitempty"`

	UserID *uint      `gorm:"index" json:"user_id,omitempty"`
	User   *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	OrderID uint `gorm:"index;not null" json:"order_id"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// ComputeTotals evaluates the invoice arithmetic. The total is deliberately
// not clamped at zero: a discount larger than subtotal+tax produces a
// negative total, matching the documented billing behavior.
func ComputeTotals(items LineItemList, taxRate *float64, discount *Discount) (subtotal, tax, total float64) {
	for _, item := range items {
		qty := float64(item.Quantity)
		subtotal += qty*item.UnitPrice + qty*item.AddOnPrice
	}

	if taxRate != nil {
		tax = subtotal * *taxRate
	}

	var off float64
	if discount != nil {
		off = discount.Amount
	}

	total = subtotal + tax - off
	return subtotal, tax, total
}

// Recompute refreshes the stored totals from the invoice's own fields.
func (inv *Invoice) Recompute() {
	inv.Subtotal, inv.Tax, inv.Total = ComputeTotals(inv.Items, inv.TaxRate, inv.Discount)
}

// BeforeSave keeps the stored totals consistent on every write path.
func (inv *Invoice) BeforeSave(tx *gorm.DB) error {
	inv.Recompute()
	return nil
}
