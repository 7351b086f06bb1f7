// database/migrate.go - Database Migration Runner
package database

import (
	"sportmate/logging"
	"sportmate/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	logging.SLog.Info("🔄 Running database migrations...")

	if err := Migrate(db); err != nil {
		logging.SLog.Fatalf("❌ Failed to run migrations: %v", err)
	}

	logging.SLog.Info("✅ All migrations completed successfully")
}

// Migrate creates the schema on the given connection. Split out from
// RunMigrations so tests can migrate an in-memory database.
func Migrate(db *gorm.DB) error {
	// Reference data before the entities pointing at it.
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Location{},
		&models.CategoryLocation{},
		&models.Participant{},
		&models.Poll{},
		&models.PollSuggestion{},
		&models.SuggestionVote{},
		&models.Event{},
		&models.Team{},
		&models.Membership{},
	); err != nil {
		return err
	}

	createIndexes(db)
	return nil
}

// createIndexes creates indexes AutoMigrate's tags don't cover
func createIndexes(db *gorm.DB) {
	// Search filter columns
	db.Exec("CREATE INDEX IF NOT EXISTS idx_events_max_participants ON events(max_participants)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_events_start_time ON events(start_time)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_locations_city ON locations(city)")

	// Roster lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_memberships_event ON memberships(event_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_memberships_team ON memberships(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_event ON teams(event_id)")
}
