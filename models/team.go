// models/team.go
package models

import "time"

// Team is one half of an event's roster split. Team names are scoped to the
// owning event; the partitioner always produces a fresh "Team1"/"Team2" pair.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_team_name" json:"event_id"`
	Name      string    `gorm:"not null;size:30;uniqueIndex:idx_event_team_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Members []Membership `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}
