package model

import (
	"gorm.io/gorm"
)

// User is an end user created implicitly on first registration. Email is the
// identity key: later registrations under the same email reuse the same row.
type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}

// BeforeCreate hook will be called before creating a new User record
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}
