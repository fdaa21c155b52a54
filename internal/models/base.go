package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Coordinates is the JSONB column holding a user's or ground's location point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan unmarshals a JSONB column into the struct.
func (c *Coordinates) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Coordinates: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, c)
}

// StringSlice stores a list of strings as JSONB.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("StringSlice: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// UintSlice stores a list of record IDs as JSONB.
type UintSlice []uint

func (s UintSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *UintSlice) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("UintSlice: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// Contains reports whether id is present in the slice.
func (s UintSlice) Contains(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
