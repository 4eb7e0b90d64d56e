// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playscrew/screw/internal/game"
)

// Rdb is the global Redis client. Connect it once at application startup;
// a nil client disables action journaling.
var Rdb *redis.Client

// DefaultQueueName is the Redis list the action journal is pushed to.
var DefaultQueueName = "screw_actions"

// ConnectRedis initializes the global Redis client from environment
// variables REDIS_ADDR (default "localhost:6379") and REDIS_DB (default 0).
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishActionRecord serializes an accepted action and pushes it onto the
// journal queue. Records arrive in engine order because the session worker
// emits them sequentially.
func PublishActionRecord(ctx context.Context, rec game.ActionRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal action record: %w", err)
	}

	queueName := getEnv("SCREW_QUEUE_NAME", DefaultQueueName)
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
