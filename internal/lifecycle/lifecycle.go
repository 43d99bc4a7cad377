// internal/lifecycle/lifecycle.go
//
// Package lifecycle derives the player-visible state of a game from its
// stored status and open/close window. Stored status is server-authoritative
// and only operators mutate it; everything here is a pure read.
package lifecycle

import (
	"time"

	"github.com/faithplay/hilo/internal/models"
)

// DisplayStatus resolves the status shown to players. Generating, ready and
// completed pass through unchanged; an active game whose close time has
// passed is shown as expired. An active game with no close time stays active.
func DisplayStatus(g *models.Game, now time.Time) models.GameStatus {
	if g.Status == models.StatusActive && g.ClosesAt != nil && !now.Before(*g.ClosesAt) {
		return models.StatusExpired
	}
	return g.Status
}

// IsOpen reports whether the game accepts submissions right now: status must
// be exactly active, both window bounds must be set, and now must fall in
// [opens_at, closes_at). A missing bound always means closed, whatever the
// stored status says.
func IsOpen(g *models.Game, now time.Time) bool {
	if g.Status != models.StatusActive {
		return false
	}
	if g.OpensAt == nil || g.ClosesAt == nil {
		return false
	}
	return !now.Before(*g.OpensAt) && now.Before(*g.ClosesAt)
}
