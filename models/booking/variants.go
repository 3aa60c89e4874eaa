package booking

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"tailor-booking/models/fulfillment"
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

// RepairOption is one selected repair line with its quantity
type RepairOption struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// RepairDetails is the payload of a repair booking
type RepairDetails struct {
	Service     string         `json:"service"`
	Options     []RepairOption `json:"options"`
	Description string         `json:"description"`
	Photos      []string       `json:"photos,omitempty"`
}

func (d *RepairDetails) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func (d RepairDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// JerseyDetails is the payload of a team jersey booking
type JerseyDetails struct {
	TeamName string               `json:"team_name"`
	Players  []fulfillment.Player `json:"players"`
}

func (d *JerseyDetails) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func (d JerseyDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// OrgDetails is the payload of an organizational booking
type OrgDetails struct {
	OrgName string               `json:"org_name"`
	Members []fulfillment.Player `json:"members"`
}

func (d *OrgDetails) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func (d OrgDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}
