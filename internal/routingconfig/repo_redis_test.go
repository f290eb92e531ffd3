package routingconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"callflow-studio/internal/callrouting"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisRepo(rdb, ttl)
}

func TestRedisRepo_GetMissing(t *testing.T) {
	_, repo := newRedisRepo(t, 0)

	_, found, err := repo.Get(context.Background(), "w1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisRepo_UpdateRoundTrip(t *testing.T) {
	mr, repo := newRedisRepo(t, time.Hour)
	ctx := context.Background()

	next, err := repo.Update(ctx, "w1", func(cur callrouting.Snapshot, found bool) (callrouting.Snapshot, error) {
		assert.False(t, found)
		s := callrouting.DefaultSnapshot(callrouting.DemoDefaults())
		s.IsSipEnabled = true
		return s, nil
	})
	require.NoError(t, err)
	assert.True(t, next.IsSipEnabled)

	got, found, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, next, got)

	assert.True(t, mr.Exists("callflow:config:w1"))
	assert.Equal(t, time.Hour, mr.TTL("callflow:config:w1"))
	assert.False(t, mr.Exists("callflow:lock:w1"), "lock must be released")
}

func TestRedisRepo_UpdateErrorKeepsValue(t *testing.T) {
	mr, repo := newRedisRepo(t, 0)
	ctx := context.Background()

	_, err := repo.Update(ctx, "w1", func(callrouting.Snapshot, bool) (callrouting.Snapshot, error) {
		return callrouting.Snapshot{Assignees: []string{"A"}}, nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, "w1", func(callrouting.Snapshot, bool) (callrouting.Snapshot, error) {
		return callrouting.Snapshot{}, boom
	})
	require.ErrorIs(t, err, boom)

	got, _, err := repo.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got.Assignees)
	assert.Equal(t, time.Duration(0), mr.TTL("callflow:config:w1"))
	assert.False(t, mr.Exists("callflow:lock:w1"))
}

func TestRedisRepo_CorruptValue(t *testing.T) {
	mr, repo := newRedisRepo(t, 0)
	require.NoError(t, mr.Set("callflow:config:w1", "{not json"))

	_, _, err := repo.Get(context.Background(), "w1")
	assert.Error(t, err)
}

func TestRedisRepo_LockedWorkspaceTimesOut(t *testing.T) {
	mr, repo := newRedisRepo(t, 0)
	require.NoError(t, mr.Set("callflow:lock:w1", "1"))
	mr.SetTTL("callflow:lock:w1", time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := repo.Update(ctx, "w1", func(cur callrouting.Snapshot, _ bool) (callrouting.Snapshot, error) {
		return cur, nil
	})
	assert.Error(t, err)
}
