package fulfillment

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Step is one stage of the fulfillment pipeline. Date and Time are kept as
// display strings because they are entered by staff and rendered verbatim.
type Step struct {
	Label  string `json:"label"`
	Done   bool   `json:"done"`
	Active bool   `json:"active"`
	Date   string `json:"date,omitempty"`
	Time   string `json:"time,omitempty"`
}

// StepList is stored as a JSON column
type StepList []Step

// Scan implements the Scanner interface for database deserialization
func (sl *StepList) Scan(value interface{}) error {
	if value == nil {
		*sl = nil
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

	return json.Unmarshal(bytes, sl)
}

// Value implements the driver Valuer interface for database serialization
func (sl StepList) Value() (driver.Value, error) {
	if sl == nil {
		return nil, nil
	}
	return json.Marshal(sl)
}

// Player is one jersey roster entry (also used for organizational members)
type Player struct {
	Name         string `json:"name"`
	Number       string `json:"number"`
	Size         string `json:"size"`
	PocketShorts bool   `json:"pocket_shorts"`
}

// PlayerList is stored as a JSON column
type PlayerList []Player

// Scan implements the Scanner interface for database deserialization
func (pl *PlayerList) Scan(value interface{}) error {
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
func (pl PlayerList) Value() (driver.Value, error) {
	if pl == nil {
		return nil, nil
	}
	return json.Marshal(pl)
}

// FullSteps returns the five-stage pipeline used for jersey and
// organizational work.
func FullSteps() StepList {
	return StepList{
		{Label: "Dropped Off"},
		{Label: "Layout"},
		{Label: "Printing"},
		{Label: "Sewing"},
		{Label: "Pick-up"},
	}
}

// RepairSteps returns the shortened pipeline used for repair work.
func RepairSteps() StepList {
	return StepList{
		{Label: "Drop Off"},
		{Label: "Sewing"},
		{Label: "Pick-up"},
	}
}
