package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithplay/hilo/internal/models"
)

func TestRoundDirection(t *testing.T) {
	for round, want := range map[int]models.Direction{
		1: models.DirectionHigh,
		2: models.DirectionHigh,
		3: models.DirectionLow,
		4: models.DirectionLow,
	} {
		got, err := RoundDirection(round)
		require.NoError(t, err, "round %d", round)
		assert.Equal(t, want, got, "round %d", round)
	}
}

func TestRoundDirectionInvalid(t *testing.T) {
	for _, round := range []int{0, 5, -1, 100} {
		_, err := RoundDirection(round)
		require.Error(t, err, "round %d should be invalid", round)
		assert.ErrorIs(t, err, ErrInvalidRound)
	}
}

func TestScoreDirections(t *testing.T) {
	// HIGH rewards common answers: rank 1 is the best possible.
	assert.Equal(t, 200, Score(1, models.DirectionHigh))
	assert.Equal(t, 1, Score(200, models.DirectionHigh))

	// LOW rewards obscure answers: rank 200 is the best possible.
	assert.Equal(t, 200, Score(200, models.DirectionLow))
	assert.Equal(t, 1, Score(1, models.DirectionLow))
}

func TestScoreMonotoneAndBounded(t *testing.T) {
	for rank := 1; rank < 200; rank++ {
		assert.Greater(t, Score(rank, models.DirectionHigh), Score(rank+1, models.DirectionHigh),
			"HIGH score must strictly favor more common answers at rank %d", rank)
		assert.Less(t, Score(rank, models.DirectionLow), Score(rank+1, models.DirectionLow),
			"LOW score must strictly favor more obscure answers at rank %d", rank)
	}
	for _, rank := range []int{-1, 0, 201, 500} {
		assert.Zero(t, Score(rank, models.DirectionHigh))
		assert.Zero(t, Score(rank, models.DirectionLow))
	}
}

func TestScoreJudgmentOffList(t *testing.T) {
	rank := 312
	j := Judgment{OnList: false, Rank: &rank}
	assert.Zero(t, ScoreJudgment(j, models.DirectionLow), "off-list answers never score")

	assert.Zero(t, ScoreJudgment(Judgment{}, models.DirectionHigh), "unjudged answers never score")
}

func TestHalftimeScore(t *testing.T) {
	now := time.Now()
	s := &models.PlayerSession{
		Rounds: []models.RoundResult{
			{RoundNumber: 1, Direction: models.DirectionHigh, RoundScore: 180, JudgedAt: now},
			{RoundNumber: 2, Direction: models.DirectionHigh, RoundScore: 150, JudgedAt: now},
			{RoundNumber: 3, Direction: models.DirectionLow, RoundScore: 90, JudgedAt: now},
		},
	}
	assert.Equal(t, 330, HalftimeScore(s), "halftime covers rounds 1-2 only")

	assert.Zero(t, HalftimeScore(&models.PlayerSession{}))
}
