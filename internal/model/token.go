package model

import (
	"time"

	"gorm.io/gorm"
)

// Token is an opaque bearer credential proving a prior successful admin
// login. Possession of the token string is the sole authorization factor:
// tokens never expire and are never revoked. An admin may hold any number of
// concurrent tokens.
type Token struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	AdminID   string    `gorm:"index;not null" json:"admin_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"` // Never expose the actual token in JSON responses
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook will be called before creating a new Token record
func (t *Token) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Token == "" {
		t.Token = generateSecureToken()
	}
	return nil
}
