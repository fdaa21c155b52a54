package team

import (
	"time"

	"gorm.io/gorm"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// Team groups players under a captain. Counters are maintained by the match
// score workflow.
type Team struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null;index"`
	CaptainID     uint   `json:"captain_id" gorm:"index;not null"`
	Description   string `json:"description"`
	TeamType      string `json:"team_type"` // e.g. tennis-ball, leather-ball
	District      string `json:"district" gorm:"index"`
	Village       string `json:"village"`
	Logo          string `json:"logo"`
	MatchesPlayed int    `json:"matches_played" gorm:"default:0"`
	MatchesWon    int    `json:"matches_won" gorm:"default:0"`

	Members []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
}

// TeamMember is the membership join row. The composite unique index makes
// repeated adds idempotent. Membership rows are hard-deleted (no soft-delete
// column): a tombstone would keep occupying the unique index and make
// ON CONFLICT DO NOTHING swallow a later re-add after leave/remove.
type TeamMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	TeamID    uint      `json:"team_id" gorm:"uniqueIndex:idx_team_member;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_team_member;not null"`
	Role      string    `json:"role" gorm:"default:'member'"` // captain | member
}

// TeamInvite is a captain's invitation to a user. Once accepted or rejected it
// is terminal.
type TeamInvite struct {
	gorm.Model
	TeamID      uint       `json:"team_id" gorm:"index;not null"`
	InviterID   uint       `json:"inviter_id" gorm:"not null"`
	InviteeID   uint       `json:"invitee_id" gorm:"index;not null"`
	Message     string     `json:"message"`
	Status      string     `json:"status" gorm:"index;default:'pending'"`
	RespondedBy *uint      `json:"responded_by,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// TeamJoinRequest is a user's request to join a team, answered by the captain.
// Terminal once non-pending.
type TeamJoinRequest struct {
	gorm.Model
	TeamID      uint       `json:"team_id" gorm:"index;not null"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Message     string     `json:"message"`
	Status      string     `json:"status" gorm:"index;default:'pending'"`
	RespondedBy *uint      `json:"responded_by,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
