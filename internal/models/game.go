// internal/models/game.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus is the server-stored lifecycle phase of a game.
type GameStatus string

const (
	StatusGenerating GameStatus = "generating"
	StatusReady      GameStatus = "ready"
	StatusActive     GameStatus = "active"
	StatusCompleted  GameStatus = "completed"

	// StatusExpired is derived for display only, never stored: an active game
	// whose close time has passed.
	StatusExpired GameStatus = "expired"
)

// Game is one playable game definition. Status and the open/close window are
// mutated only by an operator; content is immutable once persisted.
type Game struct {
	ID        uuid.UUID   `json:"id"`
	Content   GameContent `json:"content"`
	Status    GameStatus  `json:"status"`
	OpensAt   *time.Time  `json:"opens_at"`
	ClosesAt  *time.Time  `json:"closes_at"`
	CreatedAt time.Time   `json:"created_at"`
}
