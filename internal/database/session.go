// internal/database/session.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/faithplay/hilo/internal/models"
)

// RecordRoundResult writes one judged round. The primary key on (game_id,
// player_id, round_number) plus DO NOTHING makes the write at-most-once:
// concurrent duplicate submissions for the same round cannot double-score.
// Returns false when the round was already recorded, in which case nothing
// was written.
func RecordRoundResult(ctx context.Context, gameID, playerID uuid.UUID, r models.RoundResult) (bool, error) {
	q := `
		INSERT INTO round_results
			(game_id, player_id, round_number, direction, submitted_answer,
			 judged_rank, on_list, round_score, judged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (game_id, player_id, round_number) DO NOTHING
	`
	var inserted bool
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, execErr := tx.Exec(ctx, q,
			gameID, playerID, r.RoundNumber, r.Direction, r.SubmittedAnswer,
			r.JudgedRank, r.OnList, r.RoundScore, r.JudgedAt)
		if execErr != nil {
			return execErr
		}
		inserted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to record round result: %w", err)
	}
	return inserted, nil
}

// GetSession assembles a player's session from their judged rounds. A player
// with no rounds yet gets an empty session, not an error.
func GetSession(ctx context.Context, gameID, playerID uuid.UUID) (*models.PlayerSession, error) {
	q := `
		SELECT round_number, direction, submitted_answer,
		       judged_rank, on_list, round_score, judged_at
		FROM round_results
		WHERE game_id=$1 AND player_id=$2
		ORDER BY round_number
	`
	rows, err := DB.Query(ctx, q, gameID, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := &models.PlayerSession{GameID: gameID, PlayerID: playerID}
	for rows.Next() {
		var r models.RoundResult
		if err := rows.Scan(&r.RoundNumber, &r.Direction, &r.SubmittedAnswer,
			&r.JudgedRank, &r.OnList, &r.RoundScore, &r.JudgedAt); err != nil {
			return nil, err
		}
		s.Rounds = append(s.Rounds, r)
		s.TotalScore += r.RoundScore
	}
	return s, rows.Err()
}

// ListGameSessions loads every player session for a game, plus display names,
// for leaderboard aggregation.
func ListGameSessions(ctx context.Context, gameID uuid.UUID) ([]*models.PlayerSession, map[uuid.UUID]string, error) {
	q := `
		SELECT r.player_id, u.username,
		       r.round_number, r.direction, r.submitted_answer,
		       r.judged_rank, r.on_list, r.round_score, r.judged_at
		FROM round_results r
		JOIN users u ON u.id = r.player_id
		WHERE r.game_id=$1
		ORDER BY r.player_id, r.round_number
	`
	rows, err := DB.Query(ctx, q, gameID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	byPlayer := make(map[uuid.UUID]*models.PlayerSession)
	names := make(map[uuid.UUID]string)
	var order []uuid.UUID
	for rows.Next() {
		var playerID uuid.UUID
		var username string
		var r models.RoundResult
		if err := rows.Scan(&playerID, &username,
			&r.RoundNumber, &r.Direction, &r.SubmittedAnswer,
			&r.JudgedRank, &r.OnList, &r.RoundScore, &r.JudgedAt); err != nil {
			return nil, nil, err
		}
		s, ok := byPlayer[playerID]
		if !ok {
			s = &models.PlayerSession{GameID: gameID, PlayerID: playerID}
			byPlayer[playerID] = s
			names[playerID] = username
			order = append(order, playerID)
		}
		s.Rounds = append(s.Rounds, r)
		s.TotalScore += r.RoundScore
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	sessions := make([]*models.PlayerSession, 0, len(order))
	for _, id := range order {
		sessions = append(sessions, byPlayer[id])
	}
	return sessions, names, nil
}
