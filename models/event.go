// models/event.go
package models

import "time"

// Event is the central entity: a planned activity at a registered
// (category, location) pair with a bounded participant pool.
//
// CategoryID and LocationID are nullable only so that deleting reference
// data does not strand events; both are required at creation time.
// ParticipantsNum starts at 1 (the creator) and may never exceed
// MaxParticipants.
type Event struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CategoryID      *uint      `gorm:"index" json:"category_id"`
	Category        *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	LocationID      *uint      `gorm:"index" json:"location_id"`
	Location        *Location  `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Name            string     `gorm:"not null;size:40" json:"name"`
	MaxParticipants uint       `gorm:"not null" json:"max_participants"`
	ParticipantsNum uint       `gorm:"not null;default:1" json:"participants_num"`
	StartTime       time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime         time.Time  `gorm:"not null" json:"end_time"`
	IsPrivate       bool       `gorm:"default:false" json:"is_private"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Poll    *Poll        `gorm:"foreignKey:EventID" json:"poll,omitempty"`
	Members []Membership `gorm:"foreignKey:EventID" json:"members,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// IsFull reports whether the event has reached its capacity ceiling.
func (e *Event) IsFull() bool {
	return e.ParticipantsNum >= e.MaxParticipants
}

// EventPatch enumerates the fields a partial update may set. Nil pointers
// leave the current value untouched. StartTime and EndTime must be supplied
// together; a lone one is ignored.
type EventPatch struct {
	CategoryID      *uint      `json:"category_id"`
	LocationID      *uint      `json:"location_id"`
	Name            *string    `json:"name"`
	MaxParticipants *uint      `json:"max_participants"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	IsPrivate       *bool      `json:"is_private"`
}
