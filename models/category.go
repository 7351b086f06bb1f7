// models/category.go
package models

import (
	"errors"
	"regexp"
)

// validName is the allow-list shared by category and location text fields.
var validName = regexp.MustCompile(`^[&0-9a-zA-Z\s_.,-]+$`)

var ErrInvalidName = errors.New("only alphanumeric characters, spaces and ,.-_& are allowed")

const (
	MaxCategoryNameLen = 20
	MaxLocationNameLen = 40
	MaxCityLen         = 20
	MaxStreetLen       = 20
)

// ValidateName checks a text field against the allow-list and a length bound.
func ValidateName(name string, maxLen int) error {
	if name == "" || len(name) > maxLen || !validName.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// Category is an activity type events can be filed under (soccer, gym, ...).
type Category struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;not null;size:20" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

// Validate re-checks the name invariants; run before every create/update.
func (c *Category) Validate() error {
	return ValidateName(c.Name, MaxCategoryNameLen)
}
