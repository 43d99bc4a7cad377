// internal/handlers/live_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/faithplay/hilo/internal/middleware"
)

// ScoreEvent is broadcast to a game's live feed whenever a round is scored,
// so host screens can show the leaderboard move in real time.
type ScoreEvent struct {
	Type        string    `json:"type"`
	GameID      uuid.UUID `json:"game_id"`
	PlayerID    uuid.UUID `json:"player_id"`
	RoundNumber int       `json:"round_number"`
	RoundScore  int       `json:"round_score"`
	TotalScore  int       `json:"total_score"`
}

// LiveHub fans score events out to the WebSocket viewers of each game. The
// feed is read-only from the client side; scoring never depends on it.
type LiveHub struct {
	logger *logrus.Logger

	mu    sync.Mutex
	conns map[uuid.UUID]map[*websocket.Conn]struct{}
}

func NewLiveHub(logger *logrus.Logger) *LiveHub {
	return &LiveHub{
		logger: logger,
		conns:  make(map[uuid.UUID]map[*websocket.Conn]struct{}),
	}
}

func (h *LiveHub) register(gameID uuid.UUID, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[gameID] == nil {
		h.conns[gameID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[gameID][c] = struct{}{}
}

func (h *LiveHub) unregister(gameID uuid.UUID, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[gameID], c)
	if len(h.conns[gameID]) == 0 {
		delete(h.conns, gameID)
	}
}

// Broadcast sends an event to every viewer of a game. Writes happen off the
// caller's goroutine so a slow viewer never blocks scoring.
func (h *LiveHub) Broadcast(gameID uuid.UUID, ev ScoreEvent) {
	h.mu.Lock()
	targets := make([]*websocket.Conn, 0, len(h.conns[gameID]))
	for c := range h.conns[gameID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Errorf("failed to marshal score event for game %s: %v", gameID, err)
		return
	}

	go func() {
		for _, c := range targets {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := c.Write(ctx, websocket.MessageText, data); err != nil {
				h.logger.Warnf("failed to write score event for game %s: %v", gameID, err)
			}
			cancel()
		}
	}()
}

// LiveWSHandler upgrades the connection and streams score events for one game
// until the client goes away. Incoming messages are drained and ignored.
func LiveWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := uuid.Parse(pathSuffixID(r.URL.Path, "/games/ws/"))
		if err != nil {
			http.Error(w, "invalid game id in path (/games/ws/{game_id})", http.StatusBadRequest)
			return
		}

		if _, err := gs.getGame(r.Context(), gameID); err != nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for game %s: %v", gameID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")

		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)
		gs.Live.register(gameID, c)
		defer gs.Live.unregister(gameID, c)

		ctx := r.Context()
		for {
			if _, _, err := c.Read(ctx); err != nil {
				middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
				return
			}
		}
	}
}
