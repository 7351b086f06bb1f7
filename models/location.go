// models/location.go
package models

// Location is a venue events take place at.
type Location struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"uniqueIndex;not null;size:40" json:"name"`
	City         string `gorm:"not null;size:20;index" json:"city"`
	Street       string `gorm:"not null;size:20" json:"street"`
	StreetNumber uint   `json:"street_number"`
	Indoor       bool   `json:"indoor"`
	Description  string `gorm:"size:255" json:"description"`
}

func (Location) TableName() string {
	return "locations"
}

// Validate checks the allow-listed text fields.
func (l *Location) Validate() error {
	if err := ValidateName(l.Name, MaxLocationNameLen); err != nil {
		return err
	}
	if err := ValidateName(l.City, MaxCityLen); err != nil {
		return err
	}
	return ValidateName(l.Street, MaxStreetLen)
}

// LocationPatch enumerates the fields a partial update may set.
// Nil pointers leave the current value untouched.
type LocationPatch struct {
	Name         *string `json:"name"`
	City         *string `json:"city"`
	Street       *string `json:"street"`
	StreetNumber *uint   `json:"street_number"`
	Indoor       *bool   `json:"indoor"`
	Description  *string `json:"description"`
}
