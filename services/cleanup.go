// services/cleanup.go - Background retention sweeper
package services

import (
	"time"

	"sportmate/logging"
	"sportmate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupService periodically purges events that finished past the
// retention window, polls and memberships included.
type CleanupService struct {
	events    *EventService
	db        *gorm.DB
	retention time.Duration
	interval  time.Duration
	stop      chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton sweeper.
func InitCleanupService(db *gorm.DB, retention, interval time.Duration) {
	cleanupService = &CleanupService{
		events:    NewEventService(db),
		db:        db,
		retention: retention,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// GetCleanupService returns the initialized sweeper.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start launches the sweep loop.
func (s *CleanupService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.PurgeFinishedEvents(); err != nil {
					logging.Log.Error("retention sweep failed", zap.Error(err))
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the sweep loop.
func (s *CleanupService) Stop() {
	close(s.stop)
}

// PurgeFinishedEvents deletes every event whose end time fell out of the
// retention window. Each delete cascades through the event's poll,
// suggestions, teams and membership rows.
func (s *CleanupService) PurgeFinishedEvents() error {
	cutoff := time.Now().Add(-s.retention)

	var ids []uint
	if err := s.db.Model(&models.Event{}).
		Where("end_time < ?", cutoff).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	purged := 0
	for _, id := range ids {
		if err := s.events.DeleteEvent(id); err != nil {
			logging.Log.Warn("event purge failed", zap.Uint("event_id", id), zap.Error(err))
			continue
		}
		purged++
	}

	logging.Log.Info("retention sweep done",
		zap.Int("candidates", len(ids)),
		zap.Int("purged", purged),
		zap.Time("cutoff", cutoff))
	return nil
}
