package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/storebrain/backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	defaultSnapshotTTL = 10 * time.Minute
	pingTimeout        = 5 * time.Second
)

// newRedisClient connects and pings the configured server, returning the
// client together with the TTL applied to cached reports.
func newRedisClient(cfg config.CacheConfig) (*redis.Client, time.Duration, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, 0, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, 0, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return client, snapshotTTL(cfg), nil
}

func snapshotTTL(cfg config.CacheConfig) time.Duration {
	if cfg.SnapshotTTLSeconds <= 0 {
		return defaultSnapshotTTL
	}
	return time.Duration(cfg.SnapshotTTLSeconds) * time.Second
}

// buildRedisOptions prefers REDIS_URL and falls back to host, port and db.
func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// deleteKeysWithPrefix unlinks every key under prefix, batchSize keys per
// round trip.
func deleteKeysWithPrefix(ctx context.Context, client *redis.Client, prefix string, batchSize int64) error {
	iter := client.Scan(ctx, 0, prefix+"*", batchSize).Iterator()
	batch := make([]string, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis unlink under %s: %w", prefix, err)
		}
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if int64(len(batch)) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan under %s: %w", prefix, err)
	}
	return flush()
}
