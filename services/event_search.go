// services/event_search.go - Filtered event search.
//
// Filter groups are evaluated independently and combined by id-set
// intersection: groups AND together, values inside a group OR together.
package services

import (
	"strings"
	"time"

	"sportmate/models"
)

// SizeFilter matches max_participants against a threshold.
// GreaterThan true means strictly greater, false means less-or-equal.
type SizeFilter struct {
	Threshold   uint `json:"threshold"`
	GreaterThan bool `json:"greater_than"`
}

// TimeFilter matches start_time against a threshold with the same polarity
// rules as SizeFilter.
type TimeFilter struct {
	Threshold   time.Time `json:"threshold"`
	GreaterThan bool      `json:"greater_than"`
}

// SearchFilters bundles the optional filter groups. Empty/nil groups are
// skipped; no groups at all returns every event.
type SearchFilters struct {
	Categories     []string
	LocationNames  []string
	LocationCities []string
	EventSize      *SizeFilter
	StartTime      *TimeFilter
}

// Search returns the events matching every supplied filter group.
func (s *EventService) Search(filters SearchFilters) ([]models.Event, error) {
	idSets := make([][]uint, 0, 5)

	if len(filters.Categories) > 0 {
		var ids []uint
		err := s.db.Model(&models.Event{}).
			Joins("JOIN categories ON categories.id = events.category_id").
			Where("LOWER(categories.name) IN ?", lowerAll(filters.Categories)).
			Pluck("events.id", &ids).Error
		if err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}

	if len(filters.LocationNames) > 0 {
		var ids []uint
		err := s.db.Model(&models.Event{}).
			Joins("JOIN locations ON locations.id = events.location_id").
			Where("LOWER(locations.name) IN ?", lowerAll(filters.LocationNames)).
			Pluck("events.id", &ids).Error
		if err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}

	if len(filters.LocationCities) > 0 {
		var ids []uint
		err := s.db.Model(&models.Event{}).
			Joins("JOIN locations ON locations.id = events.location_id").
			Where("LOWER(locations.city) IN ?", lowerAll(filters.LocationCities)).
			Pluck("events.id", &ids).Error
		if err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}

	if filters.EventSize != nil {
		var ids []uint
		query := s.db.Model(&models.Event{})
		if filters.EventSize.GreaterThan {
			query = query.Where("max_participants > ?", filters.EventSize.Threshold)
		} else {
			query = query.Where("max_participants <= ?", filters.EventSize.Threshold)
		}
		if err := query.Pluck("events.id", &ids).Error; err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}

	if filters.StartTime != nil {
		var ids []uint
		query := s.db.Model(&models.Event{})
		if filters.StartTime.GreaterThan {
			query = query.Where("start_time > ?", filters.StartTime.Threshold)
		} else {
			query = query.Where("start_time <= ?", filters.StartTime.Threshold)
		}
		if err := query.Pluck("events.id", &ids).Error; err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}

	var events []models.Event
	query := s.db.Preload("Category").Preload("Location").Order("events.id ASC")

	if len(idSets) > 0 {
		ids := intersect(idSets)
		if len(ids) == 0 {
			return []models.Event{}, nil
		}
		query = query.Where("id IN ?", ids)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}

// intersect keeps the ids present in every set, preserving the order of the
// first set.
func intersect(sets [][]uint) []uint {
	counts := make(map[uint]int)
	for _, set := range sets {
		seen := make(map[uint]bool)
		for _, id := range set {
			if !seen[id] {
				seen[id] = true
				counts[id]++
			}
		}
	}

	var result []uint
	for _, id := range sets[0] {
		if counts[id] == len(sets) {
			result = append(result, id)
			counts[id] = 0 // drop duplicates
		}
	}
	return result
}
