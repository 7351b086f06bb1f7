// services/team_service.go - Team partitioner.
//
// One-shot split of an event's roster into two teams. Team names are scoped
// to the owning event; a repeat invocation replaces that event's previous
// pair instead of leaving orphaned team rows behind.
package services

import (
	"errors"

	"sportmate/logging"
	"sportmate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	teamOneName = "Team1"
	teamTwoName = "Team2"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// GenerateTeams splits the event's membership roster into two teams: the
// first floor(n/2) members by join order go to Team1, the remainder to
// Team2. Every membership row ends up with a team reference. Runs as one
// transaction.
func (s *TeamService) GenerateTeams(eventID uint) ([]models.Team, error) {
	var teams []models.Team

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var members []models.Membership
		if err := tx.Where("event_id = ?", eventID).Order("id ASC").Find(&members).Error; err != nil {
			return err
		}
		if len(members) < 2 {
			return ErrNotEnoughParticipants
		}

		// Drop the previous generation for this event, if any: detach the
		// memberships first, then the team rows.
		if err := tx.Model(&models.Membership{}).Where("event_id = ?", eventID).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Team{}).Error; err != nil {
			return err
		}

		// Name availability within the event scope; the unique index is the
		// backstop.
		var clash int64
		if err := tx.Model(&models.Team{}).
			Where("event_id = ? AND name IN ?", eventID, []string{teamOneName, teamTwoName}).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return ErrNameConflict
		}

		teamOne := models.Team{EventID: eventID, Name: teamOneName}
		teamTwo := models.Team{EventID: eventID, Name: teamTwoName}
		if err := tx.Create(&teamOne).Error; err != nil {
			return err
		}
		if err := tx.Create(&teamTwo).Error; err != nil {
			return err
		}

		half := len(members) / 2
		firstIDs := make([]uint, 0, half)
		secondIDs := make([]uint, 0, len(members)-half)
		for i, m := range members {
			if i < half {
				firstIDs = append(firstIDs, m.ID)
			} else {
				secondIDs = append(secondIDs, m.ID)
			}
		}

		if err := tx.Model(&models.Membership{}).Where("id IN ?", firstIDs).
			Update("team_id", teamOne.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Membership{}).Where("id IN ?", secondIDs).
			Update("team_id", teamTwo.ID).Error; err != nil {
			return err
		}

		teams = []models.Team{teamOne, teamTwo}
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNotEnoughParticipants) {
			logging.Log.Error("team generation failed", zap.Uint("event_id", eventID), zap.Error(err))
		}
		return nil, err
	}
	return teams, nil
}

// TeamsFor returns the event's current teams with their rosters.
func (s *TeamService) TeamsFor(eventID uint) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.Where("event_id = ?", eventID).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("memberships.id ASC")
		}).
		Preload("Members.Participant").
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}
