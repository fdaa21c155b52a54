package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotUnmarshalBareString(t *testing.T) {
	var slot TimeSlot
	err := json.Unmarshal([]byte(`"Morning"`), &slot)
	require.NoError(t, err)

	assert.Equal(t, SlotNamed, slot.Kind)
	assert.Equal(t, "Morning", slot.Name)
	assert.Empty(t, slot.Start)
	assert.Empty(t, slot.End)
}

func TestTimeSlotUnmarshalRangeObject(t *testing.T) {
	var slot TimeSlot
	err := json.Unmarshal([]byte(`{"start":"06:00","end":"09:00"}`), &slot)
	require.NoError(t, err)

	assert.Equal(t, SlotRange, slot.Kind)
	assert.Equal(t, "06:00", slot.Start)
	assert.Equal(t, "09:00", slot.End)
}

func TestTimeSlotUnmarshalNamedObject(t *testing.T) {
	var slot TimeSlot
	err := json.Unmarshal([]byte(`{"name":"Evening"}`), &slot)
	require.NoError(t, err)

	assert.Equal(t, SlotNamed, slot.Kind)
	assert.Equal(t, "Evening", slot.Name)
}

func TestTimeSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    TimeSlot
		wantErr bool
	}{
		{"valid named", TimeSlot{Kind: SlotNamed, Name: "Morning"}, false},
		{"named without name", TimeSlot{Kind: SlotNamed}, true},
		{"valid range", TimeSlot{Kind: SlotRange, Start: "06:00", End: "09:00"}, false},
		{"range missing end", TimeSlot{Kind: SlotRange, Start: "06:00"}, true},
		{"unknown kind", TimeSlot{Kind: "weird"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeSlotEqualComparesKindFirst(t *testing.T) {
	named := TimeSlot{Kind: SlotNamed, Name: "Morning"}
	ranged := TimeSlot{Kind: SlotRange, Start: "Morning", End: "Noon"}

	assert.False(t, named.Equal(ranged))
	assert.True(t, named.Equal(TimeSlot{Kind: SlotNamed, Name: "Morning"}))
	assert.False(t, named.Equal(TimeSlot{Kind: SlotNamed, Name: "Evening"}))
	assert.True(t, ranged.Equal(TimeSlot{Kind: SlotRange, Start: "Morning", End: "Noon"}))
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		payment float64
		current string
		want    string
	}{
		{"zero payment stays pending", 0, "", StatusPending},
		{"positive payment confirms", 500, "", StatusConfirmed},
		{"positive payment confirms pending", 1000, StatusPending, StatusConfirmed},
		{"cancelled never auto-reverts", 1000, StatusCancelled, StatusCancelled},
		{"zero payment on cancelled stays cancelled", 0, StatusCancelled, StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.payment, tt.current))
		})
	}
}
