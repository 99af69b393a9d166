package database

import (
	"DentalCenter/config"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedisClient creates a Redis client with the provided configuration and
// checks that the server answers.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = cfg.PoolSize
	opt.MinIdleConns = cfg.MinIdleConns
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.MaxRetries = cfg.MaxRetries

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}

	log.Info("redis client initialized",
		zap.Int("poolSize", cfg.PoolSize),
		zap.Int("minIdleConns", cfg.MinIdleConns),
		zap.Duration("dialTimeout", cfg.DialTimeout),
		zap.Duration("readTimeout", cfg.ReadTimeout),
		zap.Int("maxRetries", cfg.MaxRetries))
	return client, nil
}

// LogRedisPool logs the connection pool statistics for monitoring.
func LogRedisPool(client *redis.Client, log *zap.Logger) {
	stats := client.PoolStats()
	log.Debug("redis pool stats",
		zap.Uint32("total", stats.TotalConns),
		zap.Uint32("idle", stats.IdleConns),
		zap.Uint32("stale", stats.StaleConns))
}
