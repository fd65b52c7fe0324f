package models

import "time"

// User is a registered account. The bcrypt hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // don't expose hash
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRef is the short form attached to books and reviews in place of a
// bare owner id (creator / review author).
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
