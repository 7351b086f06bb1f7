// services/participant_service.go - Mirror of identity-provider subjects
package services

import (
	"errors"

	"sportmate/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

// Ensure upserts the local row for an identity-provider subject and returns
// it. The external id must be a UUID, the provider's subject format.
func (s *ParticipantService) Ensure(externalID, displayName, phoneNumber string) (*models.Participant, error) {
	if _, err := uuid.Parse(externalID); err != nil {
		return nil, errors.New("external id must be a valid UUID")
	}

	var participant models.Participant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("external_id = ?", externalID).First(&participant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			participant = models.Participant{
				ExternalID:  externalID,
				DisplayName: displayName,
				PhoneNumber: phoneNumber,
			}
			return tx.Create(&participant).Error
		}
		if err != nil {
			return err
		}

		if displayName != "" {
			participant.DisplayName = displayName
		}
		if phoneNumber != "" {
			participant.PhoneNumber = phoneNumber
		}
		return tx.Save(&participant).Error
	})

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// GetByExternalID resolves a provider subject to the local participant row.
func (s *ParticipantService) GetByExternalID(externalID string) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.Where("external_id = ?", externalID).First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// Get returns a participant by local id.
func (s *ParticipantService) Get(id uint) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.First(&participant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}
