// models/poll.go
package models

import "time"

// Poll collects time suggestions for its event. Exactly one poll per event;
// the link is set after the event row exists, so EventID is nullable.
type Poll struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	EventID        *uint      `gorm:"uniqueIndex" json:"event_id"`
	MaxSuggestions uint       `gorm:"not null" json:"max_suggestions"`
	EndTime        time.Time  `gorm:"not null;index" json:"end_time"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Suggestions []PollSuggestion `gorm:"foreignKey:PollID" json:"suggestions,omitempty"`
}

func (Poll) TableName() string {
	return "polls"
}

// IsActive reports whether the poll still accepts suggestions.
func (p *Poll) IsActive(now time.Time) bool {
	return now.Before(p.EndTime)
}

// TimeRemaining returns how long the poll stays open, never negative.
func (p *Poll) TimeRemaining(now time.Time) time.Duration {
	remaining := p.EndTime.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PollSuggestion is a proposed time for the event, unique within its poll.
type PollSuggestion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PollID        uint      `gorm:"not null;uniqueIndex:idx_poll_suggested_time" json:"poll_id"`
	SuggestedTime time.Time `gorm:"not null;uniqueIndex:idx_poll_suggested_time" json:"suggested_time"`
	CreatedAt     time.Time `json:"created_at"`

	Votes []SuggestionVote `gorm:"foreignKey:SuggestionID" json:"votes,omitempty"`
}

func (PollSuggestion) TableName() string {
	return "poll_suggestions"
}

// SuggestionVote records a participant backing a suggested time.
type SuggestionVote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SuggestionID  uint      `gorm:"not null;uniqueIndex:idx_suggestion_voter" json:"suggestion_id"`
	ParticipantID uint      `gorm:"not null;uniqueIndex:idx_suggestion_voter" json:"participant_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (SuggestionVote) TableName() string {
	return "suggestion_votes"
}
