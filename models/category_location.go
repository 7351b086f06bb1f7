// models/category_location.go
package models

// CategoryLocation declares that a (category, location) pair is bookable
// together. Events may only be created for pairs present in this table.
type CategoryLocation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_category_location" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	LocationID uint      `gorm:"not null;uniqueIndex:idx_category_location" json:"location_id"`
	Location   *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"location,omitempty"`
}

func (CategoryLocation) TableName() string {
	return "category_locations"
}
