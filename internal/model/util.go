package model

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// newID returns a fresh opaque identifier for a database row.
func newID() string {
	return uuid.New().String()
}

// generateSecureToken creates a secure random token string
func generateSecureToken() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		// In a real application, we would handle this error better
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
