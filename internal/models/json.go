package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// TolerantStringArray behaves like JSONBStringArray but swallows malformed
// input instead of failing the row. Used for admin-entered fields where a
// bad value must not break list endpoints.
type TolerantStringArray []string

func (a TolerantStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal([]string(a))
}

func (a *TolerantStringArray) Scan(value interface{}) error {
	*a = TolerantStringArray{}
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		return nil
	}
	*a = parsed
	return nil
}

// UnmarshalJSON accepts a string array and degrades anything else to empty.
func (a *TolerantStringArray) UnmarshalJSON(data []byte) error {
	var parsed []string
	if err := json.Unmarshal(data, &parsed); err != nil {
		*a = TolerantStringArray{}
		return nil
	}
	*a = parsed
	return nil
}
