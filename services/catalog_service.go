// services/catalog_service.go - Category / Location reference data and the
// compatibility registry events are validated against.
package services

import (
	"errors"

	"sportmate/logging"
	"sportmate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ================== CATEGORIES ==================

// CreateCategory validates and persists a new category.
func (s *CatalogService) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name).Count(&count)
	if count > 0 {
		return nil, ErrNameConflict
	}

	if err := s.db.Create(category).Error; err != nil {
		logging.Log.Error("category create failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category, re-running the name validation.
func (s *CatalogService) UpdateCategory(id uint, name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	category.Name = name
	if err := category.Validate(); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).Count(&count)
	if count > 0 {
		return nil, ErrNameConflict
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// ================== LOCATIONS ==================

// CreateLocation validates and persists a new venue.
func (s *CatalogService) CreateLocation(location *models.Location) (*models.Location, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Location{}).Where("LOWER(name) = LOWER(?)", location.Name).Count(&count)
	if count > 0 {
		return nil, ErrNameConflict
	}

	if err := s.db.Create(location).Error; err != nil {
		logging.Log.Error("location create failed", zap.String("name", location.Name), zap.Error(err))
		return nil, err
	}
	return location, nil
}

// UpdateLocation applies a partial update; only the supplied fields change.
func (s *CatalogService) UpdateLocation(id uint, patch models.LocationPatch) (*models.Location, error) {
	var location models.Location
	if err := s.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		location.Name = *patch.Name
	}
	if patch.City != nil {
		location.City = *patch.City
	}
	if patch.Street != nil {
		location.Street = *patch.Street
	}
	if patch.StreetNumber != nil {
		location.StreetNumber = *patch.StreetNumber
	}
	if patch.Indoor != nil {
		location.Indoor = *patch.Indoor
	}
	if patch.Description != nil {
		location.Description = *patch.Description
	}

	if err := location.Validate(); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		var count int64
		s.db.Model(&models.Location{}).Where("LOWER(name) = LOWER(?) AND id <> ?", location.Name, id).Count(&count)
		if count > 0 {
			return nil, ErrNameConflict
		}
	}

	if err := s.db.Save(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListLocations returns all venues.
func (s *CatalogService) ListLocations() ([]models.Location, error) {
	var locations []models.Location
	err := s.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

// ================== COMPATIBILITY REGISTRY ==================

// RegisterPair declares a (category, location) pair bookable together.
func (s *CatalogService) RegisterPair(categoryID, locationID uint) (*models.CategoryLocation, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		return nil, ErrNotFound
	}
	var location models.Location
	if err := s.db.First(&location, locationID).Error; err != nil {
		return nil, ErrNotFound
	}

	pair := &models.CategoryLocation{CategoryID: categoryID, LocationID: locationID}
	if err := s.db.Create(pair).Error; err != nil {
		// The composite unique index rejects a second row for the same pair.
		return nil, ErrNameConflict
	}
	return pair, nil
}

// IsCompatible is the existence check every event category/location
// assignment must pass. Pure lookup, no side effects.
func (s *CatalogService) IsCompatible(categoryID, locationID uint) bool {
	return isCompatible(s.db, categoryID, locationID)
}

// isCompatible is the transaction-scoped form used inside event writes.
func isCompatible(tx *gorm.DB, categoryID, locationID uint) bool {
	var count int64
	tx.Model(&models.CategoryLocation{}).
		Where("category_id = ? AND location_id = ?", categoryID, locationID).
		Count(&count)
	return count > 0
}

// ListPairs returns the whole compatibility table.
func (s *CatalogService) ListPairs() ([]models.CategoryLocation, error) {
	var pairs []models.CategoryLocation
	err := s.db.Preload("Category").Preload("Location").Find(&pairs).Error
	return pairs, err
}
