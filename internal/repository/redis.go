package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the shortcode-resolution cache used on the redirect
// path. The cache is optional: callers treat a nil client as cache-off and
// resolve straight from the database, so a failed ping here only costs
// latency, never correctness.
func InitRedis(addr string, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}
