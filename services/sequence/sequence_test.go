package sequence

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tailor-booking/models/counter"
)

func setupSequenceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&counter.Counter{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestNextOrderNumberFormat(t *testing.T) {
	db := setupSequenceTestDB(t)

	number, err := NextOrderNumber(db)
	assert.NoError(t, err)

	pattern := regexp.MustCompile(`^ORD-\d{4}-\d{3,}$`)
	assert.Regexp(t, pattern, number)

	expected := fmt.Sprintf("ORD-%d-001", time.Now().Year())
	assert.Equal(t, expected, number)
}

func TestNextIsMonotonic(t *testing.T) {
	db := setupSequenceTestDB(t)

	year := time.Now().Year()
	for i := 1; i <= 5; i++ {
		number, err := NextOrderNumber(db)
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD-%d-%03d", year, i), number)
	}
}

func TestScopesCountIndependently(t *testing.T) {
	db := setupSequenceTestDB(t)

	year := time.Now().Year()

	orderNum, err := NextOrderNumber(db)
	assert.NoError(t, err)
	invoiceNum, err := NextInvoiceNumber(db)
	assert.NoError(t, err)

	// Both scopes start from 001; neither is advanced by the other
	assert.Equal(t, fmt.Sprintf("ORD-%d-001", year), orderNum)
	assert.Equal(t, fmt.Sprintf("INV-%d-001", year), invoiceNum)

	orderNum, err = NextOrderNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%d-002", year), orderNum)
}

func TestNextPadsToThreeDigits(t *testing.T) {
	db := setupSequenceTestDB(t)

	year := time.Now().Year()
	seeded := counter.Counter{Scope: counter.ScopeOrder, Year: year, Value: 999}
	assert.NoError(t, db.Create(&seeded).Error)

	number, err := NextOrderNumber(db)
	assert.NoError(t, err)

	// Beyond 999 the sequence widens instead of wrapping
	assert.Equal(t, fmt.Sprintf("ORD-%d-1000", year), number)
}
