package domain

import "time"

// User is someone who can hold grants on accounts.
type User struct {
	UserID       string    `json:"userID"` // UUID
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // bcrypt hash, never the plaintext
	CreatedAt    time.Time `json:"createdAt"`
}
