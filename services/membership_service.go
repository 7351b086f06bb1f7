// services/membership_service.go - Membership ledger queries
package services

import (
	"errors"

	"sportmate/models"

	"gorm.io/gorm"
)

type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// IsMember reports whether the participant has a membership row for the event.
func (s *MembershipService) IsMember(participantID, eventID uint) bool {
	var count int64
	s.db.Model(&models.Membership{}).
		Where("participant_id = ? AND event_id = ?", participantID, eventID).
		Count(&count)
	return count > 0
}

// Remove deletes the membership row without touching the event counter.
// Use EventService.LeaveEvent for the participant-initiated path; this is
// the raw ledger operation.
func (s *MembershipService) Remove(participantID, eventID uint) error {
	res := s.db.Where("participant_id = ? AND event_id = ?", participantID, eventID).
		Delete(&models.Membership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Roster returns the event's membership rows in join order, the order the
// team partitioner assigns by.
func (s *MembershipService) Roster(eventID uint) ([]models.Membership, error) {
	var count int64
	if err := s.db.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	var members []models.Membership
	err := s.db.Where("event_id = ?", eventID).
		Preload("Participant").
		Order("id ASC").
		Find(&members).Error
	return members, err
}

// EventsFor returns the events a participant belongs to.
func (s *MembershipService) EventsFor(participantID uint) ([]models.Event, error) {
	var participant models.Participant
	if err := s.db.First(&participant, participantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var events []models.Event
	err := s.db.Joins("JOIN memberships ON memberships.event_id = events.id").
		Where("memberships.participant_id = ?", participantID).
		Preload("Category").Preload("Location").
		Order("events.start_time ASC").
		Find(&events).Error
	return events, err
}
