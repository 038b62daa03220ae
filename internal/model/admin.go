package model

import (
	"gorm.io/gorm"
)

// Admin represents a privileged account permitted to manage tours and view
// analytics. Admins are only created by the first-run bootstrap; the running
// service never mutates or deletes them.
type Admin struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never exposed
}

// BeforeCreate hook will be called before creating a new Admin record
func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}
