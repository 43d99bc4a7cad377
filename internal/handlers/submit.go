// internal/handlers/submit.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/faithplay/hilo/internal/cache"
	"github.com/faithplay/hilo/internal/database"
	"github.com/faithplay/hilo/internal/engine"
	"github.com/faithplay/hilo/internal/lifecycle"
	"github.com/faithplay/hilo/internal/models"
)

type submitRequest struct {
	GameID      uuid.UUID `json:"game_id"`
	RoundNumber int       `json:"round_number"`
	Answer      string    `json:"answer"`
}

// submitResponse is the authoritative result of a round. The client's reveal
// sequencer may delay presenting it, never alter it. AllAnswers carries the
// full ranked list for the post-round reveal screen.
type submitResponse struct {
	OnList     bool                  `json:"on_list"`
	Rank       *int                  `json:"rank"`
	RoundScore int                   `json:"round_score"`
	TotalScore int                   `json:"total_score"`
	Direction  models.Direction      `json:"direction"`
	AllAnswers []models.RankedAnswer `json:"all_answers"`
}

// SubmitAnswerHandler judges one round submission. The scoring write happens
// eagerly and at most once per (game, player, round); a duplicate submission
// is rejected without touching the recorded result.
func SubmitAnswerHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		// Round validation fails fast, before any I/O.
		direction, err := engine.RoundDirection(req.RoundNumber)
		if err != nil {
			if errors.Is(err, engine.ErrInvalidRound) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "invalid round", http.StatusBadRequest)
			return
		}

		playerID, err := EnsureEphemeralPlayer(w, r)
		if err != nil {
			gs.Logger.Warnf("player auth failed: %v", err)
			http.Error(w, "authentication failed", http.StatusForbidden)
			return
		}

		g, err := gs.getGame(r.Context(), req.GameID)
		if err != nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		if !lifecycle.IsOpen(g, time.Now()) {
			http.Error(w, "game is not open for play", http.StatusForbidden)
			return
		}

		session, err := database.GetSession(r.Context(), req.GameID, playerID)
		if err != nil {
			gs.Logger.Errorf("load session %s/%s: %v", req.GameID, playerID, err)
			http.Error(w, "failed to load session", http.StatusInternalServerError)
			return
		}
		if session.Round(req.RoundNumber) != nil {
			http.Error(w, "round already judged", http.StatusConflict)
			return
		}

		judgment, err := gs.Judge.Evaluate(r.Context(), g.Content.CoreQuestion, g.Content.Answers, req.Answer)
		if err != nil {
			gs.Logger.Errorf("arbiter consult failed for game %s: %v", req.GameID, err)
			http.Error(w, "judging temporarily unavailable", http.StatusBadGateway)
			return
		}

		result := models.RoundResult{
			RoundNumber:     req.RoundNumber,
			Direction:       direction,
			SubmittedAnswer: engine.Normalize(req.Answer),
			JudgedRank:      judgment.Rank,
			OnList:          judgment.OnList,
			RoundScore:      engine.ScoreJudgment(judgment, direction),
			JudgedAt:        time.Now(),
		}

		inserted, err := database.RecordRoundResult(r.Context(), req.GameID, playerID, result)
		if err != nil {
			gs.Logger.Errorf("record round %d for %s/%s: %v", req.RoundNumber, req.GameID, playerID, err)
			http.Error(w, "failed to record result", http.StatusInternalServerError)
			return
		}
		if !inserted {
			// A concurrent submission won the race; its judgment stands.
			http.Error(w, "round already judged", http.StatusConflict)
			return
		}

		totalScore := session.TotalScore + result.RoundScore

		gs.publishSubmission(req, playerID, result)
		gs.Live.Broadcast(req.GameID, ScoreEvent{
			Type:        "round_scored",
			GameID:      req.GameID,
			PlayerID:    playerID,
			RoundNumber: req.RoundNumber,
			RoundScore:  result.RoundScore,
			TotalScore:  totalScore,
		})

		writeJSON(w, http.StatusOK, submitResponse{
			OnList:     result.OnList,
			Rank:       result.JudgedRank,
			RoundScore: result.RoundScore,
			TotalScore: totalScore,
			Direction:  direction,
			AllAnswers: g.Content.Answers,
		})
	}
}

// publishSubmission pushes the audit record onto the Redis queue. Best
// effort: the scoring write has already committed, so a queue failure is
// logged and play continues.
func (gs *GameServer) publishSubmission(req submitRequest, playerID uuid.UUID, result models.RoundResult) {
	if cache.Rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := cache.PublishSubmission(ctx, gs.SubmissionQueue, cache.SubmissionRecord{
		GameID:      req.GameID,
		PlayerID:    playerID,
		RoundNumber: req.RoundNumber,
		Answer:      result.SubmittedAnswer,
		OnList:      result.OnList,
		JudgedRank:  result.JudgedRank,
		RoundScore:  result.RoundScore,
		Timestamp:   time.Now().UnixMilli(),
	})
	if err != nil {
		gs.Logger.Warnf("failed to publish submission record: %v", err)
	}
}
