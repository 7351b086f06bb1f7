// models/participant.go
package models

import "time"

// Participant mirrors an identity supplied by the external identity
// provider. ExternalID is the provider's subject (a UUID); rows here exist
// only so memberships have a stable local foreign key.
type Participant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ExternalID  string    `gorm:"uniqueIndex;not null;size:36" json:"external_id"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	PhoneNumber string    `gorm:"size:15" json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Memberships []Membership `gorm:"foreignKey:ParticipantID" json:"memberships,omitempty"`
}

func (Participant) TableName() string {
	return "participants"
}
