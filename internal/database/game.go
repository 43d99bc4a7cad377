// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/faithplay/hilo/internal/models"
)

// CreateGame persists a freshly validated game definition. Content is stored
// as a single JSON document; it never changes after this insert.
func CreateGame(ctx context.Context, g *models.Game) error {
	if g.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate game id: %w", err)
		}
		g.ID = id
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	contentJSON, err := json.Marshal(g.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal game content: %w", err)
	}

	q := `INSERT INTO games (id, status, content, opens_at, closes_at, created_at)
	      VALUES ($1, $2, $3, $4, $5, $6)`

	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			g.ID, g.Status, contentJSON, g.OpensAt, g.ClosesAt, g.CreatedAt)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

// GetGame loads a game with its full content.
func GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var g models.Game
	var contentJSON []byte
	q := `SELECT id, status, content, opens_at, closes_at, created_at
	      FROM games WHERE id=$1`
	err := DB.QueryRow(ctx, q, id).Scan(
		&g.ID, &g.Status, &contentJSON, &g.OpensAt, &g.ClosesAt, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentJSON, &g.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game content: %w", err)
	}
	return &g, nil
}

// ActivateGame opens a game for play within the given window. Only ready or
// already-active games can be (re)activated.
func ActivateGame(ctx context.Context, id uuid.UUID, opensAt, closesAt time.Time) error {
	q := `UPDATE games
	      SET status='active', opens_at=$1, closes_at=$2
	      WHERE id=$3 AND status IN ('ready', 'active')`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, opensAt, closesAt, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("game %s is not in an activatable state", id)
		}
		return nil
	})
}

// CompleteGame marks an active game completed.
func CompleteGame(ctx context.Context, id uuid.UUID) error {
	q := `UPDATE games SET status='completed' WHERE id=$1 AND status='active'`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, id)
		return err
	})
}
