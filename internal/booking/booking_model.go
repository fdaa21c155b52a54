package booking

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	BookedByOwner  = "owner"
	BookedByPlayer = "player"
)

// SlotKind discriminates the two time-slot representations.
type SlotKind string

const (
	SlotNamed SlotKind = "named" // a named part of day, e.g. "Morning"
	SlotRange SlotKind = "range" // an explicit start/end pair, e.g. "06:00"-"09:00"
)

// TimeSlot is the tagged union for a booking's time slot. Clients may send
// either a bare string (named period) or a {start,end} object; both are
// stored verbatim with no normalization. Comparisons go through Kind.
type TimeSlot struct {
	Kind  SlotKind `json:"kind"`
	Name  string   `json:"name,omitempty"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
}

// UnmarshalJSON accepts "Morning", {"name":...}, {"start":...,"end":...} or
// the fully tagged form.
func (t *TimeSlot) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		t.Kind = SlotNamed
		t.Name = label
		t.Start = ""
		t.End = ""
		return nil
	}

	type alias TimeSlot
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TimeSlot(raw)
	if t.Kind == "" {
		if t.Start != "" || t.End != "" {
			t.Kind = SlotRange
		} else {
			t.Kind = SlotNamed
		}
	}
	return nil
}

// Validate checks the variant's required fields.
func (t TimeSlot) Validate() error {
	switch t.Kind {
	case SlotNamed:
		if t.Name == "" {
			return errors.New("named slot requires a name")
		}
	case SlotRange:
		if t.Start == "" || t.End == "" {
			return errors.New("range slot requires start and end")
		}
	default:
		return fmt.Errorf("unknown slot kind %q", t.Kind)
	}
	return nil
}

// Equal compares two slots by discriminant first, then variant fields.
func (t TimeSlot) Equal(o TimeSlot) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == SlotNamed {
		return t.Name == o.Name
	}
	return t.Start == o.Start && t.End == o.End
}

func (t TimeSlot) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *TimeSlot) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("TimeSlot: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, t)
}

// Booking reserves a ground time slot on a date. The owner reference is
// denormalized from the ground at creation time. Overlapping bookings of the
// same slot are not prevented.
type Booking struct {
	gorm.Model
	Reference      string   `json:"reference" gorm:"uniqueIndex"`
	GroundID       uint     `json:"ground_id" gorm:"index;not null"`
	OwnerID        uint     `json:"owner_id" gorm:"index;not null"`
	PlayerID       *uint    `json:"player_id,omitempty" gorm:"index"`
	BookedBy       string   `json:"booked_by" gorm:"not null"` // owner | player
	CustomerName   string   `json:"customer_name" gorm:"not null"`
	CustomerMobile string   `json:"customer_mobile" gorm:"not null"`
	Date           string   `json:"date" gorm:"index;not null"` // YYYY-MM-DD
	Slot           TimeSlot `json:"slot" gorm:"type:jsonb"`
	PaymentAmount  float64  `json:"payment_amount" gorm:"default:0"`
	Status         string   `json:"status" gorm:"index;default:'pending'"`
	Notes          string   `json:"notes"`
}

// DeriveStatus applies the payment-driven status rule: a positive payment
// confirms the booking, otherwise it stays pending. A cancelled booking is
// never auto-reverted.
func DeriveStatus(paymentAmount float64, currentStatus string) string {
	if currentStatus == StatusCancelled {
		return StatusCancelled
	}
	if paymentAmount > 0 {
		return StatusConfirmed
	}
	return StatusPending
}

// ValidStatus reports whether s is one of the booking statuses an owner may set.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}
