// models/membership.go
package models

import "time"

// Membership links a participant to an event. One row per (participant,
// event) pair, enforced by the composite unique index. TeamID stays nil
// until the team partitioner runs. IsAdmin is true only for the creator's
// row, written during event creation.
type Membership struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	ParticipantID uint         `gorm:"not null;uniqueIndex:idx_participant_event" json:"participant_id"`
	Participant   *Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"participant,omitempty"`
	EventID       uint         `gorm:"not null;uniqueIndex:idx_participant_event;index" json:"event_id"`
	TeamID        *uint        `gorm:"index" json:"team_id"`
	Team          *Team        `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	IsAdmin       bool         `gorm:"default:false" json:"is_admin"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (Membership) TableName() string {
	return "memberships"
}
