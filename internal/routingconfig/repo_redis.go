package routingconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"callflow-studio/internal/callrouting"
	"callflow-studio/pkg/logger"
	"callflow-studio/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "callflow:"

// RedisRepo stores each workspace snapshot as JSON under <prefix>config:<workspace>.
// Updates are serialized across API instances with a short-lived Redis lock.
type RedisRepo struct {
	rdb    redis.UniversalClient
	prefix string

	// TTL expires idle snapshots; zero keeps them.
	TTL time.Duration
	// LockTTL bounds how long a crashed holder can block a workspace.
	LockTTL time.Duration
}

func NewRedisRepo(rdb redis.UniversalClient, ttl time.Duration) *RedisRepo {
	return &RedisRepo{rdb: rdb, prefix: defaultRedisPrefix, TTL: ttl, LockTTL: 5 * time.Second}
}

func (r *RedisRepo) configKey(workspaceID string) string { return r.prefix + "config:" + workspaceID }
func (r *RedisRepo) lockKey(workspaceID string) string { return r.prefix + "lock:" + workspaceID }

func (r *RedisRepo) Get(ctx context.Context, workspaceID string) (callrouting.Snapshot, bool, error) {
	raw, err := r.rdb.Get(ctx, r.configKey(workspaceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return callrouting.Snapshot{}, false, nil
	}
	if err != nil {
		return callrouting.Snapshot{}, false, err
	}
	var s callrouting.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return callrouting.Snapshot{}, false, fmt.Errorf("routingconfig: decode snapshot: %w", err)
	}
	return s, true, nil
}

func (r *RedisRepo) Update(ctx context.Context, workspaceID string, fn UpdateFunc) (callrouting.Snapshot, error) {
	unlock, err := utils.Lock(ctx, r.rdb, r.lockKey(workspaceID), r.LockTTL, 0)
	if err != nil {
		return callrouting.Snapshot{}, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			logger.From(ctx).Warn("routing lock release failed", "workspace_id", workspaceID, "error", err)
		}
	}()

	cur, found, err := r.Get(ctx, workspaceID)
	if err != nil {
		return callrouting.Snapshot{}, err
	}
	next, err := fn(cur, found)
	if err != nil {
		return callrouting.Snapshot{}, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return callrouting.Snapshot{}, err
	}
	if err := r.rdb.Set(ctx, r.configKey(workspaceID), raw, r.TTL).Err(); err != nil {
		return callrouting.Snapshot{}, err
	}
	return next, nil
}
