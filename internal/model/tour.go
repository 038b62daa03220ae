package model

import (
	"gorm.io/gorm"
)

// Tour represents a bookable offering. Price drives all revenue computation.
type Tour struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Duration    int     `gorm:"default:1" json:"duration"`
}

// BeforeCreate hook will be called before creating a new Tour record
func (t *Tour) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}
