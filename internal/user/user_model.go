package user

import (
	"time"

	"github.com/crickonnect/crickonnect-api/internal/models"
	"gorm.io/gorm"
)

const (
	RolePlayer      = "player"
	RoleGroundOwner = "ground_owner"
)

// User is a platform account: a player or a ground owner.
// Role is set at registration and treated as immutable afterwards.
type User struct {
	gorm.Model
	Name     string             `json:"name" gorm:"not null"`
	Email    string             `json:"email" gorm:"uniqueIndex;not null"`
	Password string             `json:"-" gorm:"not null"`
	Role     string             `json:"role" gorm:"index;default:'player'"`
	Phone    string             `json:"phone"`
	District string             `json:"district" gorm:"index"`
	Village  string             `json:"village"`
	Location models.Coordinates `json:"location" gorm:"type:jsonb"`
}

// Profile extends a User with cricket-specific stats. One profile per user.
type Profile struct {
	gorm.Model
	UserID        uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	BattingStyle  string             `json:"batting_style"`
	BowlingStyle  string             `json:"bowling_style"`
	PlayerType    string             `json:"player_type"` // batsman, bowler, all_rounder, wicket_keeper
	TotalRuns     int                `json:"total_runs" gorm:"default:0"`
	TotalWickets  int                `json:"total_wickets" gorm:"default:0"`
	MatchesPlayed int                `json:"matches_played" gorm:"default:0"`
	Achievements  models.StringSlice `json:"achievements" gorm:"type:jsonb"`
}

// RefreshToken stores issued refresh tokens so they can be rotated and revoked.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PublicUser is the sanitized view of a User returned by the API.
type PublicUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	District string `json:"district"`
	Village  string `json:"village"`
}

// FilterUserRecord strips credential fields from a User.
func FilterUserRecord(u *User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		District: u.District,
		Village:  u.Village,
	}
}
