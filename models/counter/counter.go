package counter

import (
	"time"
)

// Counter sequence scopes
const (
	ScopeOrder   = "order"
	ScopeInvoice = "invoice"
)

// Counter is a per-scope, per-year sequence row. Rows are incremented under
// a row lock so concurrent creations never hand out the same number.
type Counter struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Scope string `gorm:"type:varchar(30);not null;uniqueIndex:idx_counter_scope_year" json:"scope"`
	Year  int    `gorm:"not null;uniqueIndex:idx_counter_scope_year" json:"year"`
	Value int64  `gorm:"not null;default:0" json:"value"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
