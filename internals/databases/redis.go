package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"unitrack_backend/internals/configs"
)

var RDB *redis.Client

// InitRedis connects the shared client used for presence sets and the
// realtime event pub/sub channel.
func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       0,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Redis connection successfully established.")
}
