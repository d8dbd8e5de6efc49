package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/geocoder89/fintrack/internal/domain/transaction"
	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis backs the summary cache with a shared redis instance so several
// API replicas see the same invalidations.
type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL

	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Redis{redisdb: redisdb, ttl: ttl}
}

func summaryKey(userID string) string {
	return "summary:v1:" + userID
}

func (c *Redis) Get(ctx context.Context, userID string) (transaction.Summary, bool) {
	raw, err := c.redisdb.Get(ctx, summaryKey(userID)).Bytes()

	if err != nil {
		// redis.Nil and transient failures both count as a miss
		return transaction.Summary{}, false
	}

	var s transaction.Summary

	err = json.Unmarshal(raw, &s)

	if err != nil {
		return transaction.Summary{}, false
	}

	return s, true
}

func (c *Redis) Set(ctx context.Context, userID string, s transaction.Summary) {
	raw, err := json.Marshal(s)

	if err != nil {
		return
	}

	_ = c.redisdb.Set(ctx, summaryKey(userID), raw, c.ttl).Err()
}

func (c *Redis) Invalidate(ctx context.Context, userID string) {
	_ = c.redisdb.Del(ctx, summaryKey(userID)).Err()
}

// this ping function checks redis connectivity

func (c *Redis) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

// this closes the client

func (c *Redis) Close() error {
	return c.redisdb.Close()
}
