package domain

import "time"

// User represents a chat account stored in the users table.
// PasswordHash is nil for rows created through the directory endpoint.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserProfile is the public projection of a user. It deliberately has no
// password field so listings can never leak the hash.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
