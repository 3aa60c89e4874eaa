package service

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Category classifies a catalog entry
type Category string

const (
	CategoryRepair         Category = "repair"
	CategoryJersey         Category = "jersey"
	CategoryOrganizational Category = "organizational"
	CategoryGeneral        Category = "general"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryRepair, CategoryJersey, CategoryOrganizational, CategoryGeneral:
		return true
	default:
		return false
	}
}

// PriceOption is a named price attached to a service (option or add-on)
type PriceOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PriceOptionList is stored as a JSON column
type PriceOptionList []PriceOption

// Scan implements the Scanner interface for database deserialization
func (pl *PriceOptionList) Scan(value interface{}) error {
	if value == nil {
		*pl = nil
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

	return json.Unmarshal(bytes, pl)
}

// Value implements the driver Valuer interface for database serialization
func (pl PriceOptionList) Value() (driver.Value, error) {
	if pl == nil {
		return nil, nil
	}
	return json.Marshal(pl)
}

// Service is a purchasable catalog entry. Created and edited by admins only;
// read-only to every other role.
type Service struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null;unique" json:"name"`
	Category  Category        `gorm:"type:varchar(30);not null" json:"category"`
	BasePrice float64         `gorm:"not null" json:"base_price"`
	Unit      string          `gorm:"type:varchar(50)" json:"unit"`
	Options   PriceOptionList `gorm:"type:json" json:"options"`
	AddOns    PriceOptionList `gorm:"type:json" json:"add_ons"`
	Active    bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
