// Package cache implements the Redis-backed summary cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

const (
	versionKeyPrefix  = "summary:version:"
	snapshotKeyPrefix = "summary:snapshot:"

	// DefaultSnapshotTTL bounds how long an unread snapshot stays in Redis.
	DefaultSnapshotTTL = 24 * time.Hour
)

type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a SummaryCache on top of a Redis client.
// A non-positive ttl falls back to DefaultSnapshotTTL.
func NewSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

func versionKey(userID uuid.UUID) string {
	return versionKeyPrefix + userID.String()
}

func snapshotKey(userID uuid.UUID, version int64) string {
	return fmt.Sprintf("%s%s:%d", snapshotKeyPrefix, userID, version)
}

func (c *summaryCache) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read summary version: %w", err)
	}
	return version, nil
}

func (c *summaryCache) BumpVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	version, err := c.client.Incr(ctx, versionKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to bump summary version: %w", err)
	}
	return version, nil
}

func (c *summaryCache) Get(ctx context.Context, userID uuid.UUID, version int64) (*adapter.SummarySnapshot, error) {
	raw, err := c.client.Get(ctx, snapshotKey(userID, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read summary snapshot: %w", err)
	}

	var snapshot adapter.SummarySnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode summary snapshot: %w", err)
	}
	return &snapshot, nil
}

func (c *summaryCache) Set(ctx context.Context, userID uuid.UUID, snapshot *adapter.SummarySnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode summary snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(userID, snapshot.Version), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store summary snapshot: %w", err)
	}
	return nil
}
