// services/event_service.go - Event lifecycle and capacity engine.
//
// Every write operation runs inside one transaction; a validation failure
// anywhere rolls the whole operation back. The capacity ceiling is enforced
// with an atomic conditional increment on the event row, so two concurrent
// joins can never both pass the check and overshoot max_participants.
package services

import (
	"errors"
	"time"

	"sportmate/logging"
	"sportmate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EventService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db, now: time.Now}
}

// CreateEventInput carries everything event creation needs, poll window
// included: event and poll are born in the same transaction.
type CreateEventInput struct {
	CategoryID         uint      `json:"category_id"`
	LocationID         uint      `json:"location_id"`
	Name               string    `json:"name"`
	MaxParticipants    uint      `json:"max_participants"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	IsPrivate          bool      `json:"is_private"`
	PollEndTime        time.Time `json:"poll_end_time"`
	PollMaxSuggestions uint      `json:"poll_max_suggestions"`
	CreatorID          uint      `json:"-"`
}

// verifyEventTimes enforces end strictly after start.
func verifyEventTimes(startTime, endTime time.Time) error {
	if !endTime.After(startTime) {
		return ErrInvalidTimeWindow
	}
	return nil
}

// CreateEvent validates and persists a new event together with its poll and
// the creator's admin membership, all in one transaction. Returns the new
// event id.
func (s *EventService) CreateEvent(in CreateEventInput) (uint, error) {
	now := s.now()
	var eventID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if !isCompatible(tx, in.CategoryID, in.LocationID) {
			return ErrIncompatibleCategoryLocation
		}

		if err := verifyEventTimes(in.StartTime, in.EndTime); err != nil {
			return err
		}
		if !in.StartTime.After(now) {
			return ErrInvalidTimeWindow
		}

		// The creator occupies the first slot, so capacity 1 leaves no
		// room for anyone to join.
		if in.MaxParticipants <= 1 {
			return ErrCapacityTooSmall
		}

		if err := verifyPollWindow(in.PollEndTime, in.StartTime); err != nil {
			return err
		}

		var creator models.Participant
		if err := tx.First(&creator, in.CreatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		poll := &models.Poll{
			MaxSuggestions: in.PollMaxSuggestions,
			EndTime:        in.PollEndTime,
		}
		if err := tx.Create(poll).Error; err != nil {
			return err
		}

		event := &models.Event{
			CategoryID:      &in.CategoryID,
			LocationID:      &in.LocationID,
			Name:            in.Name,
			MaxParticipants: in.MaxParticipants,
			ParticipantsNum: 1,
			StartTime:       in.StartTime,
			EndTime:         in.EndTime,
			IsPrivate:       in.IsPrivate,
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		member := &models.Membership{
			ParticipantID: in.CreatorID,
			EventID:       event.ID,
			IsAdmin:       true,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		// Back-link the poll now that the event row exists.
		if err := tx.Model(poll).Update("event_id", event.ID).Error; err != nil {
			return err
		}

		eventID = event.ID
		return nil
	})

	if err != nil {
		return 0, err
	}
	return eventID, nil
}

// GetEvent returns an event with its references loaded.
func (s *EventService) GetEvent(eventID uint) (*models.Event, error) {
	var event models.Event
	err := s.db.Preload("Category").Preload("Location").Preload("Poll").
		First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// JoinEvent adds a participant to an event. The outward contract is a bare
// boolean: a full event, an unknown participant or event, a duplicate join
// and a storage conflict all come back as false.
func (s *EventService) JoinEvent(participantID, eventID uint) bool {
	if err := s.joinEvent(participantID, eventID); err != nil {
		logging.Log.Debug("join rejected",
			zap.Uint("participant_id", participantID),
			zap.Uint("event_id", eventID),
			zap.Error(err))
		return false
	}
	return true
}

func (s *EventService) joinEvent(participantID, eventID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var participant models.Participant
		if err := tx.First(&participant, participantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var dup int64
		if err := tx.Model(&models.Membership{}).
			Where("participant_id = ? AND event_id = ?", participantID, eventID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateMembership
		}

		// Check-and-increment as a single statement: the WHERE clause only
		// matches while a slot is free, so concurrent joins serialize on the
		// event row and the loser sees zero rows affected.
		res := tx.Model(&models.Event{}).
			Where("id = ? AND participants_num < max_participants", eventID).
			UpdateColumn("participants_num", gorm.Expr("participants_num + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			tx.Model(&models.Event{}).Where("id = ?", eventID).Count(&count)
			if count == 0 {
				return ErrNotFound
			}
			return ErrCapacityExceeded
		}

		member := &models.Membership{
			ParticipantID: participantID,
			EventID:       eventID,
			IsAdmin:       false,
		}
		// The composite unique index backstops the duplicate check above;
		// an insert conflict rolls the increment back with the transaction.
		return tx.Create(member).Error
	})
}

// LeaveEvent removes a participant's membership and frees a slot. Leaving
// an event never joined is a no-op failure; the counter never goes below
// zero.
func (s *EventService) LeaveEvent(participantID, eventID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("participant_id = ? AND event_id = ?", participantID, eventID).
			Delete(&models.Membership{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Model(&models.Event{}).
			Where("id = ? AND participants_num > 0", eventID).
			UpdateColumn("participants_num", gorm.Expr("participants_num - 1")).Error
	})
}

// UpdateEvent applies a partial update. Fields are validated in order
// against the state already updated within the call; any failure rolls the
// whole update back. An empty patch returns the event unchanged.
func (s *EventService) UpdateEvent(eventID uint, patch models.EventPatch) (*models.Event, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{}

		if patch.CategoryID != nil {
			locationID := event.LocationID
			if patch.LocationID != nil {
				locationID = patch.LocationID
			}
			if locationID == nil || !isCompatible(tx, *patch.CategoryID, *locationID) {
				return ErrIncompatibleCategoryLocation
			}
			event.CategoryID = patch.CategoryID
			updates["category_id"] = *patch.CategoryID
		}

		if patch.LocationID != nil {
			if event.CategoryID == nil || !isCompatible(tx, *event.CategoryID, *patch.LocationID) {
				return ErrIncompatibleCategoryLocation
			}
			event.LocationID = patch.LocationID
			updates["location_id"] = *patch.LocationID
		}

		if patch.Name != nil {
			updates["name"] = *patch.Name
		}

		sizeChanged := false
		if patch.MaxParticipants != nil {
			if *patch.MaxParticipants <= event.ParticipantsNum {
				return ErrCapacityTooSmall
			}
			sizeChanged = true
			updates["max_participants"] = *patch.MaxParticipants
		}

		// Time window only moves as a pair; a lone start or end is ignored.
		if patch.StartTime != nil && patch.EndTime != nil {
			if err := verifyEventTimes(*patch.StartTime, *patch.EndTime); err != nil {
				return err
			}
			updates["start_time"] = *patch.StartTime
			updates["end_time"] = *patch.EndTime
		}

		if patch.IsPrivate != nil {
			updates["is_private"] = *patch.IsPrivate
		}

		if len(updates) == 0 {
			return nil
		}

		query := tx.Model(&models.Event{}).Where("id = ?", eventID)
		if sizeChanged {
			// Re-assert occupancy at write time so a join committed since
			// the read above cannot slip the ceiling under the occupancy.
			query = query.Where("participants_num < ?", *patch.MaxParticipants)
		}
		res := query.Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCapacityTooSmall
		}
		return nil
	})

	if err != nil {
		logging.Log.Warn("event update rejected", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return s.GetEvent(eventID)
}

// IsFull reports whether the event has reached capacity.
func (s *EventService) IsFull(eventID uint) (bool, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return event.IsFull(), nil
}

// DeleteEvent removes an event with its poll, suggestions, teams and
// membership rows. Nothing referencing the event survives.
func (s *EventService) DeleteEvent(eventID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var poll models.Poll
		if err := tx.Where("event_id = ?", eventID).First(&poll).Error; err == nil {
			var suggestionIDs []uint
			tx.Model(&models.PollSuggestion{}).Where("poll_id = ?", poll.ID).Pluck("id", &suggestionIDs)
			if len(suggestionIDs) > 0 {
				if err := tx.Where("suggestion_id IN ?", suggestionIDs).Delete(&models.SuggestionVote{}).Error; err != nil {
					return err
				}
				if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.PollSuggestion{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&poll).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Where("event_id = ?", eventID).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Team{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
}
