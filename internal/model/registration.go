package model

import (
	"time"

	"gorm.io/gorm"
)

// Registration links a user to a tour they booked. Rows are immutable once
// created and survive deletion of the referenced tour.
type Registration struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"index;not null" json:"user_id"`
	TourID           string    `gorm:"index;not null" json:"tour_id"`
	RegistrationDate time.Time `gorm:"not null" json:"registration_date"`
}

// BeforeCreate hook will be called before creating a new Registration record
func (r *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.RegistrationDate.IsZero() {
		r.RegistrationDate = time.Now()
	}
	return nil
}
