package schedulingRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"agendly/models"
)

// RepoCache is a redis read-through cache for the documents that are
// effectively read-only on the hot path. A nil RepoCache is a no-op, so the
// repository works without redis (tests, one-off tools).
type RepoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepoCache wraps a redis client for repository caching.
func NewRepoCache(client *redis.Client, ttl time.Duration) *RepoCache {
	return &RepoCache{client: client, ttl: ttl}
}

func availabilityKey(tenantID, workerID string) string {
	return fmt.Sprintf("avail:%s:%s", tenantID, workerID)
}

func configKey(tenantID string) string {
	return fmt.Sprintf("schedcfg:%s", tenantID)
}

func (c *RepoCache) getAvailability(ctx context.Context, tenantID, workerID string) (*models.WeeklyAvailability, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, availabilityKey(tenantID, workerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var wa models.WeeklyAvailability
	if err := json.Unmarshal(data, &wa); err != nil {
		return nil, false
	}
	return &wa, true
}

func (c *RepoCache) setAvailability(ctx context.Context, wa *models.WeeklyAvailability) {
	if c == nil || c.client == nil {
		return
	}
	if data, err := json.Marshal(wa); err == nil {
		c.client.Set(ctx, availabilityKey(wa.TenantID, wa.WorkerID), data, c.ttl)
	}
}

func (c *RepoCache) invalidateAvailability(ctx context.Context, tenantID, workerID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, availabilityKey(tenantID, workerID))
}

func (c *RepoCache) getConfig(ctx context.Context, tenantID string) (*models.SchedulingConfig, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, configKey(tenantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var cfg models.SchedulingConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, false
	}
	return &cfg, true
}

func (c *RepoCache) setConfig(ctx context.Context, cfg *models.SchedulingConfig) {
	if c == nil || c.client == nil {
		return
	}
	if data, err := json.Marshal(cfg); err == nil {
		c.client.Set(ctx, configKey(cfg.TenantID), data, c.ttl)
	}
}

func (c *RepoCache) invalidateConfig(ctx context.Context, tenantID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, configKey(tenantID))
}
