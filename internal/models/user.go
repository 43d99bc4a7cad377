package models

import "github.com/google/uuid"

// User is a player identity. Ephemeral users are created silently on a
// player's first interaction and can later be claimed with credentials.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	Username string    `json:"username"`

	IsEphemeral bool `json:"is_ephemeral"`
	IsAdmin     bool `json:"is_admin"`
}
