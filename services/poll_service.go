// services/poll_service.go - Suggestion poll lifecycle
package services

import (
	"errors"
	"time"

	"sportmate/logging"
	"sportmate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PollService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPollService(db *gorm.DB) *PollService {
	return &PollService{db: db, now: time.Now}
}

// verifyPollWindow enforces the one poll invariant: the suggestion window
// must close strictly before the event starts.
func verifyPollWindow(pollEndTime, eventStartTime time.Time) error {
	if !pollEndTime.Before(eventStartTime) {
		return ErrInvalidPollWindow
	}
	return nil
}

// GetPoll returns the poll for an event, suggestions included.
func (s *PollService) GetPoll(eventID uint) (*models.Poll, error) {
	var poll models.Poll
	err := s.db.Where("event_id = ?", eventID).
		Preload("Suggestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_suggestions.id ASC")
		}).
		First(&poll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &poll, nil
}

// ClosePoll ends the suggestion window now. Closing an already closed poll
// is a no-op.
func (s *PollService) ClosePoll(pollID uint) error {
	now := s.now()

	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !poll.IsActive(now) {
		return nil
	}

	if err := s.db.Model(&poll).Update("end_time", now).Error; err != nil {
		logging.Log.Error("poll close failed", zap.Uint("poll_id", pollID), zap.Error(err))
		return err
	}
	return nil
}

// IsActive reports whether the poll still accepts suggestions.
func (s *PollService) IsActive(pollID uint) (bool, error) {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return poll.IsActive(s.now()), nil
}

// TimeRemaining returns the non-negative duration until the poll closes.
func (s *PollService) TimeRemaining(pollID uint) (time.Duration, error) {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return poll.TimeRemaining(s.now()), nil
}

// AddSuggestion records a proposed event time. Fails once the poll closed,
// once the suggestion cap is reached, and for a time already suggested.
func (s *PollService) AddSuggestion(pollID uint, suggestedTime time.Time) (*models.PollSuggestion, error) {
	var suggestion *models.PollSuggestion

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var poll models.Poll
		if err := tx.First(&poll, pollID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !poll.IsActive(s.now()) {
			return ErrPollClosed
		}

		var count int64
		if err := tx.Model(&models.PollSuggestion{}).Where("poll_id = ?", pollID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(poll.MaxSuggestions) {
			return ErrSuggestionLimit
		}

		var dup int64
		if err := tx.Model(&models.PollSuggestion{}).
			Where("poll_id = ? AND suggested_time = ?", pollID, suggestedTime).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrNameConflict
		}

		suggestion = &models.PollSuggestion{PollID: pollID, SuggestedTime: suggestedTime}
		return tx.Create(suggestion).Error
	})

	if err != nil {
		return nil, err
	}
	return suggestion, nil
}

// VoteSuggestion records a participant backing a suggested time. One vote
// per participant per suggestion.
func (s *PollService) VoteSuggestion(suggestionID, participantID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var suggestion models.PollSuggestion
		if err := tx.First(&suggestion, suggestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var participant models.Participant
		if err := tx.First(&participant, participantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		vote := &models.SuggestionVote{SuggestionID: suggestionID, ParticipantID: participantID}
		if err := tx.Create(vote).Error; err != nil {
			// unique (suggestion, participant) index
			return ErrNameConflict
		}
		return nil
	})
}
