// cmd/archiver/archiver.go is an asynchronous worker that pops judged-round
// submission records from a Redis queue and persists them to the Postgres
// submission log in batches. The authoritative round_results write has
// already happened on the serving path; this log exists for audit and
// engagement reporting.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/faithplay/hilo/internal/cache"
	"github.com/faithplay/hilo/internal/config"
	"github.com/faithplay/hilo/internal/database"
)

// ArchiverService encapsulates the Redis + DB plumbing for draining the
// submission queue.
type ArchiverService struct {
	redisClient *redis.Client
	queueName   string
	batchSize   int
	flushDelay  time.Duration

	batchMu  sync.Mutex
	batch    []cache.SubmissionRecord
	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewArchiverService constructs an ArchiverService from the environment.
func NewArchiverService(cfg *config.Config) *ArchiverService {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &ArchiverService{
		redisClient: rdb,
		queueName:   cfg.SubmissionQueue,
		batchSize:   cfg.ArchiverBatchSize,
		flushDelay:  time.Duration(cfg.ArchiverFlushMs) * time.Millisecond,
		batch:       make([]cache.SubmissionRecord, 0, cfg.ArchiverBatchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run starts the queue-draining loop and blocks until Stop is called.
func (as *ArchiverService) Run(dsn string) {
	database.ConnectDB(dsn)

	go as.readRedisLoop()

	log.Println("hilo-archiver service started.")
	<-as.ctx.Done()
	as.flushBatchToDB()
	log.Println("hilo-archiver shutting down.")
}

// readRedisLoop continuously uses BLPop to retrieve submission records,
// accumulating them into a batch and flushing on size or time.
func (as *ArchiverService) readRedisLoop() {
	ticker := time.NewTicker(as.flushDelay)
	defer ticker.Stop()

	for {
		select {
		case <-as.ctx.Done():
			return

		case <-ticker.C:
			as.flushBatchToDB()

		default:
			// BLPop with a short timeout so context cancellation is honored.
			res, err := as.redisClient.BLPop(as.ctx, 3*time.Second, as.queueName).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				log.Printf("[ERROR] BLPop: %v\n", err)
				continue
			}
			if len(res) < 2 {
				continue
			}

			var record cache.SubmissionRecord
			if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
				log.Printf("invalid submission record: %v\n", err)
				continue
			}
			as.appendToBatch(record)
		}
	}
}

func (as *ArchiverService) appendToBatch(record cache.SubmissionRecord) {
	as.batchMu.Lock()
	defer as.batchMu.Unlock()

	as.batch = append(as.batch, record)
	if len(as.batch) >= as.batchSize {
		as.flushBatchToDBLocked()
	}
}

func (as *ArchiverService) flushBatchToDB() {
	as.batchMu.Lock()
	defer as.batchMu.Unlock()
	as.flushBatchToDBLocked()
}

// flushBatchToDBLocked writes the pending batch in a single transaction.
// Caller holds batchMu.
func (as *ArchiverService) flushBatchToDBLocked() {
	if len(as.batch) == 0 {
		return
	}
	batchCopy := make([]cache.SubmissionRecord, len(as.batch))
	copy(batchCopy, as.batch)
	as.batch = as.batch[:0]

	ctx := context.Background()
	err := pgx.BeginTxFunc(ctx, database.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range batchCopy {
			if err := insertSubmissionTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insertSubmissionTx: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] flushBatchToDB: %v\n", err)
	} else {
		log.Printf("Flushed %d submission records to DB.\n", len(batchCopy))
	}
}

// insertSubmissionTx appends one record to the submission log.
func insertSubmissionTx(ctx context.Context, tx pgx.Tx, rec cache.SubmissionRecord) error {
	q := `
		INSERT INTO submission_log (
			game_id, player_id, round_number, answer,
			on_list, judged_rank, round_score, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Exec(ctx, q,
		rec.GameID, rec.PlayerID, rec.RoundNumber, rec.Answer,
		rec.OnList, rec.JudgedRank, rec.RoundScore,
		time.UnixMilli(rec.Timestamp),
	)
	return err
}

// Stop gracefully stops the archiver.
func (as *ArchiverService) Stop() {
	as.cancelFn()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	as := NewArchiverService(cfg)
	go as.Run(cfg.PostgresDSN())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan
	as.Stop()
	log.Println("Archiver shutdown complete.")
}
