package config

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the session store. nil means sessions live in memory.
var RedisClient *redis.Client

// InitRedis connects to REDIS_ADDR and returns a status line for the startup
// log. An unconfigured or unreachable Redis leaves RedisClient nil.
func InitRedis() string {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return "Redis not configured, sessions kept in memory."
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient = nil // Disable Redis if not reachable
		return "Redis configured but not reachable, sessions kept in memory."
	}
	return "Redis connection successful."
}
