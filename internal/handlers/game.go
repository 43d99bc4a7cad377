// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/faithplay/hilo/internal/content"
	"github.com/faithplay/hilo/internal/database"
	"github.com/faithplay/hilo/internal/engine"
	"github.com/faithplay/hilo/internal/leaderboard"
	"github.com/faithplay/hilo/internal/lifecycle"
	"github.com/faithplay/hilo/internal/models"
)

// IngestGameHandler accepts one blob of generator output, gates it through
// the content validator, and persists it as a ready game. Content that fails
// validation is discarded with a keyworded reason; nothing partial is saved.
func IngestGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireAdmin(r); err != nil {
			http.Error(w, "operator access required", http.StatusForbidden)
			return
		}

		var req struct {
			Raw string `json:"raw"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		gc, err := content.ParseGameContent(req.Raw)
		if err != nil {
			gs.Logger.Warnf("rejected generated content: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"reason": err.Error()})
			return
		}

		g := &models.Game{
			Content: *gc,
			Status:  models.StatusReady,
		}
		if err := database.CreateGame(r.Context(), g); err != nil {
			gs.Logger.Errorf("failed to persist game: %v", err)
			http.Error(w, "failed to persist game", http.StatusInternalServerError)
			return
		}

		gs.Logger.Infof("ingested game %s (%q)", g.ID, gc.CoreQuestion)
		writeJSON(w, http.StatusCreated, map[string]string{"game_id": g.ID.String()})
	}
}

// ActivateGameHandler opens a game for play within a time window.
func ActivateGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireAdmin(r); err != nil {
			http.Error(w, "operator access required", http.StatusForbidden)
			return
		}

		var req struct {
			GameID   uuid.UUID `json:"game_id"`
			OpensAt  time.Time `json:"opens_at"`
			ClosesAt time.Time `json:"closes_at"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if !req.ClosesAt.After(req.OpensAt) {
			http.Error(w, "closes_at must be after opens_at", http.StatusBadRequest)
			return
		}

		if err := database.ActivateGame(r.Context(), req.GameID, req.OpensAt, req.ClosesAt); err != nil {
			gs.Logger.Warnf("activate game %s: %v", req.GameID, err)
			http.Error(w, "game cannot be activated", http.StatusConflict)
			return
		}
		gs.evictGame(req.GameID)
		w.WriteHeader(http.StatusOK)
	}
}

// CompleteGameHandler closes an active game.
func CompleteGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireAdmin(r); err != nil {
			http.Error(w, "operator access required", http.StatusForbidden)
			return
		}

		var req struct {
			GameID uuid.UUID `json:"game_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := database.CompleteGame(r.Context(), req.GameID); err != nil {
			gs.Logger.Warnf("complete game %s: %v", req.GameID, err)
			http.Error(w, "failed to complete game", http.StatusInternalServerError)
			return
		}
		gs.evictGame(req.GameID)
		w.WriteHeader(http.StatusOK)
	}
}

// gameView is the player-facing read of a game. The ranked answer list is
// deliberately absent; it is only revealed after a round is judged.
type gameView struct {
	ID              uuid.UUID         `json:"id"`
	Status          models.GameStatus `json:"status"`
	DisplayStatus   models.GameStatus `json:"display_status"`
	IsOpen          bool              `json:"is_open"`
	OpensAt         *time.Time        `json:"opens_at"`
	ClosesAt        *time.Time        `json:"closes_at"`
	CoreQuestion    string            `json:"core_question"`
	ScriptureVerses string            `json:"scripture_verses"`
	HistoricalFacts []models.Fact     `json:"historical_facts"`
	FunFacts        []models.Fact     `json:"fun_facts"`
}

// GetGameHandler serves the player-facing view of one game, including the
// derived display status and is-open flag.
func GetGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := uuid.Parse(pathSuffixID(r.URL.Path, "/games/"))
		if err != nil {
			http.Error(w, "invalid game id", http.StatusBadRequest)
			return
		}

		g, err := gs.getGame(r.Context(), gameID)
		if err != nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		now := time.Now()
		writeJSON(w, http.StatusOK, gameView{
			ID:              g.ID,
			Status:          g.Status,
			DisplayStatus:   lifecycle.DisplayStatus(g, now),
			IsOpen:          lifecycle.IsOpen(g, now),
			OpensAt:         g.OpensAt,
			ClosesAt:        g.ClosesAt,
			CoreQuestion:    g.Content.CoreQuestion,
			ScriptureVerses: g.Content.ScriptureVerses,
			HistoricalFacts: g.Content.HistoricalFacts,
			FunFacts:        g.Content.FunFacts,
		})
	}
}

// HalftimeHandler reads the requesting player's cumulative score for rounds
// 1-2, shown in the mid-game summary between rounds 2 and 3.
func HalftimeHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := uuid.Parse(pathSuffixID(r.URL.Path, "/games/"))
		if err != nil {
			http.Error(w, "invalid game id", http.StatusBadRequest)
			return
		}

		playerID, err := EnsureEphemeralPlayer(w, r)
		if err != nil {
			http.Error(w, "authentication failed", http.StatusForbidden)
			return
		}

		session, err := database.GetSession(r.Context(), gameID, playerID)
		if err != nil {
			gs.Logger.Errorf("load session %s/%s: %v", gameID, playerID, err)
			http.Error(w, "failed to load session", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"rounds":         session.Rounds,
			"halftime_score": engine.HalftimeScore(session),
			"total_score":    session.TotalScore,
		})
	}
}

// LeaderboardHandler serves the ranked standings for a game.
func LeaderboardHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := uuid.Parse(pathSuffixID(r.URL.Path, "/games/"))
		if err != nil {
			http.Error(w, "invalid game id", http.StatusBadRequest)
			return
		}

		sessions, names, err := database.ListGameSessions(r.Context(), gameID)
		if err != nil {
			gs.Logger.Errorf("load sessions for game %s: %v", gameID, err)
			http.Error(w, "failed to load leaderboard", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"game_id": gameID,
			"entries": leaderboard.Aggregate(sessions, names),
		})
	}
}
