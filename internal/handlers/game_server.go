// internal/handlers/game_server.go
package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/faithplay/hilo/internal/database"
	"github.com/faithplay/hilo/internal/engine"
	"github.com/faithplay/hilo/internal/models"
)

// GameServer holds the judge, the live-feed hub, and an in-memory cache of
// loaded game definitions so the 200-answer list is not re-read from the
// database on every submission. Game content is immutable, so cached copies
// only need refreshing when an operator changes the status or window.
type GameServer struct {
	Logger *logrus.Logger
	Judge  *engine.AnswerJudge
	Live   *LiveHub

	// SubmissionQueue is the Redis list judged rounds are published to.
	SubmissionQueue string

	mu    sync.Mutex
	games map[uuid.UUID]*models.Game
}

// NewGameServer wires a server around a judge.
func NewGameServer(logger *logrus.Logger, judge *engine.AnswerJudge, submissionQueue string) *GameServer {
	return &GameServer{
		Logger:          logger,
		Judge:           judge,
		Live:            NewLiveHub(logger),
		SubmissionQueue: submissionQueue,
		games:           make(map[uuid.UUID]*models.Game),
	}
}

// getGame returns a cached game definition, loading it on first access.
func (gs *GameServer) getGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	gs.mu.Lock()
	if g, ok := gs.games[id]; ok {
		gs.mu.Unlock()
		return g, nil
	}
	gs.mu.Unlock()

	g, err := database.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	gs.mu.Lock()
	gs.games[id] = g
	gs.mu.Unlock()
	return g, nil
}

// evictGame drops a cached definition after an operator mutation.
func (gs *GameServer) evictGame(id uuid.UUID) {
	gs.mu.Lock()
	delete(gs.games, id)
	gs.mu.Unlock()
}
