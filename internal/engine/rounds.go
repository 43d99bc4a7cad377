// internal/engine/rounds.go
package engine

import (
	"errors"
	"fmt"

	"github.com/faithplay/hilo/internal/models"
)

// ErrInvalidRound indicates a round number outside 1..4. Callers must treat
// this as fatal to the operation, never as a default.
var ErrInvalidRound = errors.New("round number must be between 1 and 4")

// MaxArbiterRank is the upper clamp for arbiter-provided ranks. It
// deliberately exceeds the 200-item list so the arbiter can express "not on
// the list, but plausible".
const MaxArbiterRank = 500

// RoundDirection maps a round number to its scoring direction: HIGH for
// rounds 1 and 2, LOW for rounds 3 and 4.
func RoundDirection(round int) (models.Direction, error) {
	switch round {
	case 1, 2:
		return models.DirectionHigh, nil
	case 3, 4:
		return models.DirectionLow, nil
	default:
		return "", fmt.Errorf("%w: got %d", ErrInvalidRound, round)
	}
}

// Score computes the points awarded for an on-list rank in a given direction.
// HIGH rounds reward common answers: rank 1 is worth 200 points, rank 200 is
// worth 1. LOW rounds reward obscurity: rank 200 is worth 200 points, rank 1
// is worth 1. Ranks outside the 200-item list score zero. Pure function of
// (rank, direction); monotone for the direction and never negative.
func Score(rank int, direction models.Direction) int {
	if rank < 1 || rank > models.AnswerListSize {
		return 0
	}
	if direction == models.DirectionHigh {
		return models.AnswerListSize + 1 - rank
	}
	return rank
}

// ScoreJudgment computes the round score for a judged answer. Off-list or
// unjudged answers always score zero.
func ScoreJudgment(j Judgment, direction models.Direction) int {
	if !j.OnList || j.Rank == nil {
		return 0
	}
	return Score(*j.Rank, direction)
}

// HalftimeScore is the cumulative score of rounds 1 and 2, read at the 2->3
// transition for the mid-game summary. A pure read of accumulated state.
func HalftimeScore(s *models.PlayerSession) int {
	total := 0
	for _, r := range s.Rounds {
		if r.RoundNumber <= 2 {
			total += r.RoundScore
		}
	}
	return total
}
