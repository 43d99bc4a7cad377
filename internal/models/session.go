// internal/models/session.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Direction is the scoring direction of a round. HIGH rounds reward common
// answers (low rank numbers); LOW rounds reward obscure ones.
type Direction string

const (
	DirectionHigh Direction = "HIGH"
	DirectionLow  Direction = "LOW"
)

// NumRounds is the number of rounds in a full session.
const NumRounds = 4

// RoundResult is the judged outcome of a single round. Each round is written
// exactly once; JudgedRank is nil when the answer matched nothing at all.
type RoundResult struct {
	RoundNumber     int       `json:"round_number"`
	Direction       Direction `json:"direction"`
	SubmittedAnswer string    `json:"submitted_answer"`
	JudgedRank      *int      `json:"judged_rank"`
	OnList          bool      `json:"on_list"`
	RoundScore      int       `json:"round_score"`
	JudgedAt        time.Time `json:"judged_at"`
}

// PlayerSession tracks one player's progress through a game's four rounds.
// It is created on the first submission and terminal once all rounds are judged.
type PlayerSession struct {
	GameID     uuid.UUID     `json:"game_id"`
	PlayerID   uuid.UUID     `json:"player_id"`
	Rounds     []RoundResult `json:"rounds"`
	TotalScore int           `json:"total_score"`
}

// Round returns the judged result for a given round number, or nil if that
// round has not been judged yet.
func (s *PlayerSession) Round(n int) *RoundResult {
	for i := range s.Rounds {
		if s.Rounds[i].RoundNumber == n {
			return &s.Rounds[i]
		}
	}
	return nil
}

// Completed reports whether all four rounds have been judged.
func (s *PlayerSession) Completed() bool {
	return len(s.Rounds) >= NumRounds
}

// CompletedAt returns the time the final round was judged, or nil for
// in-progress sessions.
func (s *PlayerSession) CompletedAt() *time.Time {
	if !s.Completed() {
		return nil
	}
	var last time.Time
	for _, r := range s.Rounds {
		if r.JudgedAt.After(last) {
			last = r.JudgedAt
		}
	}
	return &last
}
