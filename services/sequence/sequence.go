package sequence

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tailor-booking/models/counter"
)

// Prefixes for the human-readable ids
const (
	OrderPrefix   = "ORD"
	InvoicePrefix = "INV"
)

// Next reserves the next sequence number for scope in the current year and
// formats it as <prefix>-<year>-<seq> with at least three digits. The
// counter row is locked for the duration of tx, so two concurrent
// conversions cannot be handed the same number.
func Next(tx *gorm.DB, scope, prefix string) (string, error) {
	year := time.Now().Year()

	q := tx
	// sqlite (used in tests) has no SELECT ... FOR UPDATE; its writes are
	// serialized at the database level anyway
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row counter.Counter
	err := q.Where(counter.Counter{Scope: scope, Year: year}).
		FirstOrCreate(&row).Error
	if err != nil {
		// Two transactions can both miss the first row of a scope/year;
		// the loser hits the unique index and picks up the winner's row
		// on a second read
		err = q.Where(counter.Counter{Scope: scope, Year: year}).
			FirstOrCreate(&row).Error
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s counter: %w", scope, err)
	}

	row.Value++
	if err := tx.Save(&row).Error; err != nil {
		return "", fmt.Errorf("failed to advance %s counter: %w", scope, err)
	}

	return fmt.Sprintf("%s-%d-%03d", prefix, year, row.Value), nil
}

// NextOrderNumber reserves the next ORD-<year>-<seq> id inside tx.
func NextOrderNumber(tx *gorm.DB) (string, error) {
	return Next(tx, counter.ScopeOrder, OrderPrefix)
}

// NextInvoiceNumber reserves the next INV-<year>-<seq> id inside tx.
func NextInvoiceNumber(tx *gorm.DB) (string, error) {
	return Next(tx, counter.ScopeInvoice, InvoicePrefix)
}
