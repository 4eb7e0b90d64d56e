// cmd/journal/journal.go is an asynchronous consumer that pops accepted
// action records from the Redis queue and persists them to PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/playscrew/screw/internal/database"
	"github.com/playscrew/screw/internal/game"
)

// JournalService drains the action queue into the session_actions table
// and marks sessions abandoned after a period of inactivity.
type JournalService struct {
	log         *logrus.Logger
	redisClient *redis.Client
	batchSize   int
	flushDelay  time.Duration
	inactivity  time.Duration

	// lastActivity maps session id to the last time an action arrived.
	lastActivity sync.Map

	batchMu  sync.Mutex
	batch    []game.ActionRecord
	ctx      context.Context
	cancelFn context.CancelFunc
}

func NewJournalService(log *logrus.Logger) *JournalService {
	batchSize := getEnvInt("JOURNAL_BATCH_SIZE", 20)
	flushMs := getEnvInt("JOURNAL_FLUSH_MS", 500)
	inactivitySec := getEnvInt("SESSION_INACTIVITY_TIMEOUT_SEC", 600)

	rdb := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &JournalService{
		log:         log,
		redisClient: rdb,
		batchSize:   batchSize,
		flushDelay:  time.Duration(flushMs) * time.Millisecond,
		inactivity:  time.Duration(inactivitySec) * time.Second,
		batch:       make([]game.ActionRecord, 0, batchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run blocks until Stop is called, reading the queue and watching for
// inactive sessions in the background.
func (js *JournalService) Run() error {
	if err := database.ConnectDB(); err != nil {
		return err
	}

	go js.readQueueLoop()
	go js.inactivityLoop()

	js.log.Info("screw-journal service started")
	<-js.ctx.Done()
	js.flushBatchToDB()
	js.log.Info("screw-journal shutting down")
	return nil
}

// readQueueLoop pops records with BLPop so shutdown is handled within a
// bounded wait, flushing the batch on a timer.
func (js *JournalService) readQueueLoop() {
	ticker := time.NewTicker(js.flushDelay)
	defer ticker.Stop()

	queueName := getEnv("SCREW_QUEUE_NAME", "screw_actions")

	for {
		select {
		case <-js.ctx.Done():
			return

		case <-ticker.C:
			js.flushBatchToDB()

		default:
			res, err := js.redisClient.BLPop(js.ctx, 3*time.Second, queueName).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
					js.log.Errorf("BLPop: %v", err)
				}
				continue
			}
			if len(res) < 2 {
				continue
			}

			var rec game.ActionRecord
			if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
				js.log.Warnf("invalid action record: %v", err)
				continue
			}

			js.lastActivity.Store(rec.GameID, time.Now())
			js.appendToBatch(rec)
		}
	}
}

func (js *JournalService) appendToBatch(rec game.ActionRecord) {
	js.batchMu.Lock()
	defer js.batchMu.Unlock()

	js.batch = append(js.batch, rec)
	if len(js.batch) >= js.batchSize {
		js.flushBatchLocked()
	}
}

func (js *JournalService) flushBatchToDB() {
	js.batchMu.Lock()
	defer js.batchMu.Unlock()
	js.flushBatchLocked()
}

// flushBatchLocked writes the current batch in one transaction. Caller
// holds batchMu.
func (js *JournalService) flushBatchLocked() {
	if len(js.batch) == 0 {
		return
	}
	batchCopy := make([]game.ActionRecord, len(js.batch))
	copy(batchCopy, js.batch)
	js.batch = js.batch[:0]

	ctx := context.Background()
	err := pgx.BeginTxFunc(ctx, database.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range batchCopy {
			if err := insertActionTx(ctx, tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		js.log.Errorf("flush batch: %v", err)
		return
	}
	js.log.Debugf("flushed %d actions to DB", len(batchCopy))
}

// inactivityLoop marks sessions abandoned once no action has arrived for
// the configured threshold.
func (js *JournalService) inactivityLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-js.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()
			js.lastActivity.Range(func(key, val interface{}) bool {
				sessionID, ok1 := key.(uuid.UUID)
				last, ok2 := val.(time.Time)
				if ok1 && ok2 && now.Sub(last) > js.inactivity {
					js.markSessionAbandoned(sessionID)
					js.lastActivity.Delete(sessionID)
				}
				return true
			})
		}
	}
}

func (js *JournalService) markSessionAbandoned(sessionID uuid.UUID) {
	ctx := context.Background()
	err := pgx.BeginTxFunc(ctx, database.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `
			UPDATE sessions
			SET status = 'abandoned', end_time = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`
		_, e := tx.Exec(ctx, q, sessionID)
		return e
	})
	if err != nil {
		js.log.Errorf("failed to mark session %v abandoned: %v", sessionID, err)
		return
	}
	js.log.Infof("marked session %v as abandoned due to inactivity", sessionID)
}

// insertActionTx appends one action row, upserting the session row first.
// An END_OF_GAME record finalizes the session.
func insertActionTx(ctx context.Context, tx pgx.Tx, rec game.ActionRecord) error {
	upsertSessionQ := `
		INSERT INTO sessions (id, status, start_time)
		VALUES ($1, 'in_progress', NOW())
		ON CONFLICT (id)
		DO NOTHING
	`
	if _, err := tx.Exec(ctx, upsertSessionQ, rec.GameID); err != nil {
		return err
	}

	actionInsertQ := `
		INSERT INTO session_actions (
			session_id, action_index, actor_user_id, action_code, phase, occurred_at
		) VALUES ($1, $2, $3, $4, $5, to_timestamp($6 / 1000.0))
		ON CONFLICT (session_id, action_index) DO NOTHING
	`
	if _, err := tx.Exec(ctx, actionInsertQ,
		rec.GameID, rec.Index, rec.ActorID, string(rec.Code), rec.Phase, rec.Timestamp,
	); err != nil {
		return err
	}

	if rec.Code == game.ActionEndOfGame {
		finalizeQ := `
			UPDATE sessions
			SET status = 'completed', end_time = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`
		if _, err := tx.Exec(ctx, finalizeQ, rec.GameID); err != nil {
			return err
		}
	}
	return nil
}

// Stop cancels the service loops.
func (js *JournalService) Stop() {
	js.cancelFn()
}

func main() {
	log := logrus.New()
	if os.Getenv("SCREW_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	js := NewJournalService(log)

	errc := make(chan error, 1)
	go func() {
		errc <- js.Run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			log.Fatalf("journal service failed: %v", err)
		}
	case <-sigChan:
		js.Stop()
		<-errc
	}
	log.Info("journal shutdown complete")
}

func getEnv(key, defVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defVal
}

func getEnvInt(key string, defVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defVal
	}
	return i
}
