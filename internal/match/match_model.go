package match

import (
	"time"

	"github.com/crickonnect/crickonnect-api/internal/models"
	"gorm.io/gorm"
)

const (
	StatusUpcoming  = "upcoming"
	StatusPast      = "past"
	StatusAvailable = "available"

	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestRejected  = "rejected"
	RequestCancelled = "cancelled"
)

// Match is a scheduled or completed game between two teams. Status is a
// snapshot taken at creation; only the score workflow moves it afterwards.
type Match struct {
	gorm.Model
	Status       string           `json:"status" gorm:"index;default:'upcoming'"` // upcoming | past | available
	Team1ID      uint             `json:"team1_id" gorm:"index;not null"`
	Team2ID      uint             `json:"team2_id" gorm:"index;not null"`
	CreatorID    uint             `json:"creator_id" gorm:"index;not null"`
	MatchDate    string           `json:"match_date" gorm:"index;not null"` // YYYY-MM-DD
	MatchTime    string           `json:"match_time"`
	GroundName   string           `json:"ground_name"`
	Village      string           `json:"village"`
	MatchType    string           `json:"match_type"`
	Team1Players models.UintSlice `json:"team1_players" gorm:"type:jsonb"`
	Team2Players models.UintSlice `json:"team2_players" gorm:"type:jsonb"`
	Team1Score   string           `json:"team1_score"`
	Team2Score   string           `json:"team2_score"`
	WinnerTeamID *uint            `json:"winner_team_id,omitempty"`
}

// MatchRequest is one team's proposal to play another. Terminal once it
// leaves pending; accepting links the created match.
type MatchRequest struct {
	gorm.Model
	RequestingTeamID uint       `json:"requesting_team_id" gorm:"index;not null"`
	ReceivingTeamID  uint       `json:"receiving_team_id" gorm:"index;not null"`
	CreatorID        uint       `json:"creator_id" gorm:"not null"`
	ProposedDate     string     `json:"proposed_date" gorm:"not null"` // YYYY-MM-DD
	ProposedTime     string     `json:"proposed_time"`
	GroundName       string     `json:"ground_name"`
	Village          string     `json:"village"`
	MatchType        string     `json:"match_type"`
	Message          string     `json:"message"`
	Status           string     `json:"status" gorm:"index;default:'pending'"`
	RespondedBy      *uint      `json:"responded_by,omitempty"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
	MatchID          *uint      `json:"match_id,omitempty"`
}

// SnapshotStatus classifies a match date against today: a future (or today's)
// date is upcoming, anything earlier is past. The snapshot is never
// re-evaluated after creation.
func SnapshotStatus(matchDate string, now time.Time) string {
	d, err := time.Parse("2006-01-02", matchDate)
	if err != nil {
		return StatusUpcoming
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return StatusPast
	}
	return StatusUpcoming
}

// DatePassed reports whether the match date is strictly before today.
func DatePassed(matchDate string, now time.Time) bool {
	return SnapshotStatus(matchDate, now) == StatusPast
}
