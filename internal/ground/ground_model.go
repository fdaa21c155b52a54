package ground

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/crickonnect/crickonnect-api/internal/models"
	"gorm.io/gorm"
)

// WeeklyAvailability maps a weekday name ("monday".."sunday") to the named
// slots bookable on that day. Stored as JSONB and returned verbatim.
type WeeklyAvailability map[string][]string

func (w WeeklyAvailability) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WeeklyAvailability) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("WeeklyAvailability: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, w)
}

// Ground is a bookable cricket venue. One ground per owner account.
type Ground struct {
	gorm.Model
	OwnerID      uint               `json:"owner_id" gorm:"uniqueIndex;not null"`
	Name         string             `json:"name" gorm:"not null"`
	Description  string             `json:"description" gorm:"type:text"`
	Address      string             `json:"address"`
	District     string             `json:"district" gorm:"index"`
	Village      string             `json:"village"`
	Location     models.Coordinates `json:"location" gorm:"type:jsonb"`
	PricePerSlot float64            `json:"price_per_slot" gorm:"default:0"`
	Availability WeeklyAvailability `json:"availability" gorm:"type:jsonb"`
	Images       models.StringSlice `json:"images" gorm:"type:jsonb"`

	// Rating aggregate; average is derived on write.
	RatingSum     float64 `json:"-" gorm:"default:0"`
	RatingCount   int     `json:"rating_count" gorm:"default:0"`
	RatingAverage float64 `json:"rating_average" gorm:"default:0"`
}

// AddRating folds a new rating into the aggregate.
func (g *Ground) AddRating(rating float64) {
	g.RatingSum += rating
	g.RatingCount++
	g.RatingAverage = g.RatingSum / float64(g.RatingCount)
}
