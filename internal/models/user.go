package models

import "time"

// User is an account holder. Prefs is a free-form object the client uses
// opportunistically (last-known latitude/longitude, onboarding guide flag).
type User struct {
	ID           string                 `json:"id" db:"id"`
	Name         string                 `json:"name" db:"name"`
	Email        string                 `json:"email" db:"email"`
	PasswordHash string                 `json:"-" db:"password_hash"`
	Prefs        map[string]interface{} `json:"prefs"`
	CreatedAt    time.Time              `json:"createdAt" db:"created_at"`
}

// Session is the shape handed back after login/registration.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
