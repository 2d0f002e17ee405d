package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/storebrain/backend-go/internal/config"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	latestReportKeyPrefix = "store:latest"
	runsKey               = "store:runs"
	snapshotScanBatchSize = 100
)

// SnapshotCache keeps the most recent day report of each run.
type SnapshotCache interface {
	GetLatest(ctx context.Context, runID string) (*domain.DayReport, bool, error)
	SetLatest(ctx context.Context, report domain.DayReport) error
	ListRuns(ctx context.Context, limit int) ([]string, error)
	Invalidate(ctx context.Context, runID string) error
	InvalidateAll(ctx context.Context) error
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSnapshotCache struct{}

func NewSnapshotCache(cfg config.CacheConfig) (SnapshotCache, error) {
	if !cfg.Enabled {
		return &noopSnapshotCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSnapshotCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSnapshotCache() SnapshotCache {
	return &noopSnapshotCache{}
}

func (c *redisSnapshotCache) GetLatest(ctx context.Context, runID string) (*domain.DayReport, bool, error) {
	payload, err := c.client.Get(ctx, latestReportKey(runID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.DayReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode day report cache: %w", err)
	}
	return &report, true, nil
}

func (c *redisSnapshotCache) SetLatest(ctx context.Context, report domain.DayReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode day report cache: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, latestReportKey(report.RunID), payload, c.ttl)
	pipe.ZAdd(ctx, runsKey, redis.Z{Score: float64(time.Now().Unix()), Member: report.RunID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSnapshotCache) ListRuns(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	runs, err := c.client.ZRevRange(ctx, runsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list runs failed: %w", err)
	}
	return runs, nil
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context, runID string) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, latestReportKey(runID))
	pipe.ZRem(ctx, runsKey, runID)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisSnapshotCache) InvalidateAll(ctx context.Context) error {
	if err := deleteKeysWithPrefix(ctx, c.client, latestReportKeyPrefix, snapshotScanBatchSize); err != nil {
		return err
	}
	return c.client.Del(ctx, runsKey).Err()
}

func (n *noopSnapshotCache) GetLatest(ctx context.Context, runID string) (*domain.DayReport, bool, error) {
	return nil, false, nil
}

func (n *noopSnapshotCache) SetLatest(ctx context.Context, report domain.DayReport) error {
	return nil
}

func (n *noopSnapshotCache) ListRuns(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}

func (n *noopSnapshotCache) Invalidate(ctx context.Context, runID string) error {
	return nil
}

func (n *noopSnapshotCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func latestReportKey(runID string) string {
	return fmt.Sprintf("%s:%s", latestReportKeyPrefix, strings.TrimSpace(runID))
}
