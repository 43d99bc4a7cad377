package leaderboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithplay/hilo/internal/models"
)

func fullSession(playerID uuid.UUID, total int, finishedAt time.Time) *models.PlayerSession {
	rounds := make([]models.RoundResult, 0, models.NumRounds)
	for n := 1; n <= models.NumRounds; n++ {
		dir := models.DirectionHigh
		if n > 2 {
			dir = models.DirectionLow
		}
		rounds = append(rounds, models.RoundResult{
			RoundNumber: n,
			Direction:   dir,
			JudgedAt:    finishedAt.Add(time.Duration(n-models.NumRounds) * time.Minute),
		})
	}
	return &models.PlayerSession{
		GameID:     uuid.New(),
		PlayerID:   playerID,
		Rounds:     rounds,
		TotalScore: total,
	}
}

func TestAggregateOrderingAndRanks(t *testing.T) {
	now := time.Now()
	sessions := make([]*models.PlayerSession, 0, 200)
	for i := 0; i < 200; i++ {
		sessions = append(sessions, fullSession(uuid.New(), i+1, now))
	}

	entries := Aggregate(sessions, nil)
	require.Len(t, entries, 200)

	for i, e := range entries {
		assert.Equal(t, 200-i, e.TotalScore, "scores must descend")
		assert.Equal(t, i+1, e.Rank, "distinct scores get consecutive ranks")
	}
}

func TestAggregateDenseTies(t *testing.T) {
	now := time.Now()
	a := fullSession(uuid.New(), 500, now.Add(-2*time.Hour))
	b := fullSession(uuid.New(), 500, now.Add(-time.Hour))
	c := fullSession(uuid.New(), 410, now)
	d := fullSession(uuid.New(), 410, now)
	d.Rounds = d.Rounds[:2] // still in progress

	entries := Aggregate([]*models.PlayerSession{d, c, b, a}, nil)
	require.Len(t, entries, 4)

	assert.Equal(t, a.PlayerID, entries[0].PlayerID, "earlier finisher wins the tie")
	assert.Equal(t, b.PlayerID, entries[1].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank, "equal totals share a rank")

	assert.Equal(t, c.PlayerID, entries[2].PlayerID, "finished sessions rank ahead of unfinished ties")
	assert.Equal(t, d.PlayerID, entries[3].PlayerID)
	assert.Equal(t, 2, entries[2].Rank, "ranks are dense, no gaps after ties")
	assert.Equal(t, 2, entries[3].Rank)
}

func TestAggregateZeroRoundSessions(t *testing.T) {
	id := uuid.New()
	sessions := []*models.PlayerSession{
		{GameID: uuid.New(), PlayerID: id},
		fullSession(uuid.New(), 120, time.Now()),
	}

	entries := Aggregate(sessions, nil)
	require.Len(t, entries, 2)
	assert.Equal(t, id, entries[1].PlayerID)
	assert.Zero(t, entries[1].TotalScore, "players with no judged rounds appear at 0")
	assert.Equal(t, 2, entries[1].Rank)
}

func TestAggregateDisplayNames(t *testing.T) {
	now := time.Now()
	named := fullSession(uuid.New(), 300, now)
	anon := fullSession(uuid.New(), 200, now)

	entries := Aggregate(
		[]*models.PlayerSession{named, anon},
		map[uuid.UUID]string{named.PlayerID: "deborah"},
	)
	require.Len(t, entries, 2)
	assert.Equal(t, "deborah", entries[0].DisplayName)
	assert.Equal(t, fmt.Sprintf("player-%s", anon.PlayerID.String()[:8]), entries[1].DisplayName)
}

func TestAggregateDeterministicOnFullTie(t *testing.T) {
	now := time.Now()
	a := fullSession(uuid.MustParse("00000000-0000-0000-0000-00000000000a"), 250, now)
	b := fullSession(uuid.MustParse("00000000-0000-0000-0000-00000000000b"), 250, now)

	first := Aggregate([]*models.PlayerSession{b, a}, nil)
	second := Aggregate([]*models.PlayerSession{a, b}, nil)
	require.Len(t, first, 2)

	assert.Equal(t, first[0].PlayerID, second[0].PlayerID, "input order must not change the output")
	assert.Equal(t, a.PlayerID, first[0].PlayerID, "player ID breaks a full tie")
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, nil))
}
