// internal/leaderboard/leaderboard.go
//
// Package leaderboard ranks player sessions for a game by total score.
package leaderboard

import (
	"sort"

	"github.com/google/uuid"

	"github.com/faithplay/hilo/internal/models"
)

// Entry is one leaderboard row.
type Entry struct {
	PlayerID    uuid.UUID `json:"player_id"`
	DisplayName string    `json:"display_name"`
	TotalScore  int       `json:"total_score"`
	Rank        int       `json:"rank"`
}

// Aggregate orders sessions descending by total score and assigns dense
// 1-based ranks; equal totals share a rank. Within a tie the order is
// deterministic: sessions that finished earlier come first, unfinished
// sessions last, player ID as the final tie-break. Sessions with zero judged
// rounds are included with a score of 0. displayNames maps player IDs to the
// names shown; missing entries fall back to the short ID.
func Aggregate(sessions []*models.PlayerSession, displayNames map[uuid.UUID]string) []Entry {
	sorted := make([]*models.PlayerSession, len(sessions))
	copy(sorted, sessions)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		at, bt := a.CompletedAt(), b.CompletedAt()
		switch {
		case at != nil && bt != nil && !at.Equal(*bt):
			return at.Before(*bt)
		case at != nil && bt == nil:
			return true
		case at == nil && bt != nil:
			return false
		}
		return a.PlayerID.String() < b.PlayerID.String()
	})

	entries := make([]Entry, 0, len(sorted))
	rank := 0
	prevScore := 0
	for i, s := range sorted {
		if i == 0 || s.TotalScore != prevScore {
			rank++
			prevScore = s.TotalScore
		}
		name := displayNames[s.PlayerID]
		if name == "" {
			name = shortID(s.PlayerID)
		}
		entries = append(entries, Entry{
			PlayerID:    s.PlayerID,
			DisplayName: name,
			TotalScore:  s.TotalScore,
			Rank:        rank,
		})
	}
	return entries
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return "player-" + s[:8]
}
