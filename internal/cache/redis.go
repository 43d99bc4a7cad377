// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// DefaultQueueName is the Redis list the archiver drains.
var DefaultQueueName = "hilo_submissions"

// SubmissionRecord is the audit entry pushed for every judged round. The
// archiver batches these into the submission log; the scoring write itself
// has already happened by the time one is published.
type SubmissionRecord struct {
	GameID      uuid.UUID `json:"game_id"`
	PlayerID    uuid.UUID `json:"player_id"`
	RoundNumber int       `json:"round_number"`
	Answer      string    `json:"answer"`
	OnList      bool      `json:"on_list"`
	JudgedRank  *int      `json:"judged_rank"`
	RoundScore  int       `json:"round_score"`
	Timestamp   int64     `json:"timestamp"`
}

// ConnectRedis initializes the global Redis client.
func ConnectRedis(addr string, dbIdx int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishSubmission serializes the record and pushes it onto the queue. A
// quick network send; callers treat failures as non-fatal and log them.
func PublishSubmission(ctx context.Context, queueName string, record SubmissionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal SubmissionRecord: %w", err)
	}
	if queueName == "" {
		queueName = DefaultQueueName
	}
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}
