package services

import (
	"fmt"
	"testing"
	"time"

	"sportmate/database"
	"sportmate/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database for one test. cache=shared
// keeps every pooled connection on the same store, _busy_timeout serializes
// concurrent writers instead of failing them.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single pooled connection keeps concurrent transactions from
	// tripping sqlite's write-lock upgrade errors.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedPair creates a category, a location and their compatibility row.
func seedPair(t *testing.T, db *gorm.DB, categoryName, locationName, city string) (models.Category, models.Location) {
	t.Helper()

	category := models.Category{Name: categoryName}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category %q: %v", categoryName, err)
	}
	location := models.Location{
		Name:         locationName,
		City:         city,
		Street:       "Main",
		StreetNumber: 1,
		Indoor:       false,
		Description:  "test venue",
	}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("create location %q: %v", locationName, err)
	}
	pair := models.CategoryLocation{CategoryID: category.ID, LocationID: location.ID}
	if err := db.Create(&pair).Error; err != nil {
		t.Fatalf("create pair: %v", err)
	}
	return category, location
}

// seedParticipant creates one identity mirror row.
func seedParticipant(t *testing.T, db *gorm.DB, name string) models.Participant {
	t.Helper()

	participant := models.Participant{
		ExternalID:  fmt.Sprintf("00000000-0000-4000-8000-%012d", seedSeq(db)),
		DisplayName: name,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("create participant %q: %v", name, err)
	}
	return participant
}

func seedSeq(db *gorm.DB) int64 {
	var count int64
	db.Model(&models.Participant{}).Count(&count)
	return count + 1
}

// validInput returns a CreateEventInput that passes every validation.
func validInput(category models.Category, location models.Location, creator models.Participant) CreateEventInput {
	start := time.Now().Add(48 * time.Hour)
	return CreateEventInput{
		CategoryID:         category.ID,
		LocationID:         location.ID,
		Name:               "football with friends",
		MaxParticipants:    20,
		StartTime:          start,
		EndTime:            start.Add(3 * time.Hour),
		IsPrivate:          false,
		PollEndTime:        start.Add(-24 * time.Hour),
		PollMaxSuggestions: 3,
		CreatorID:          creator.ID,
	}
}

// mustCreateEvent runs the full create path and returns the stored event.
func mustCreateEvent(t *testing.T, db *gorm.DB, in CreateEventInput) models.Event {
	t.Helper()

	svc := NewEventService(db)
	id, err := svc.CreateEvent(in)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	var event models.Event
	if err := db.First(&event, id).Error; err != nil {
		t.Fatalf("load event %d: %v", id, err)
	}
	return event
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
