package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestTryLock_SingleOwner(t *testing.T) {
	mr, rdb := newMiniredis(t)
	ctx := context.Background()

	token, ok, err := TryLock(ctx, rdb, "lock:a", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = TryLock(ctx, rdb, "lock:a", time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "second lock should be rejected")

	assert.ErrorIs(t, Unlock(ctx, rdb, "lock:a", "someone-else"), ErrLockLost)
	assert.True(t, mr.Exists("lock:a"), "foreign token must not release the lock")

	require.NoError(t, Unlock(ctx, rdb, "lock:a", token))
	assert.False(t, mr.Exists("lock:a"), "released key should be deleted")
}

func TestTryLock_ValidatesArgs(t *testing.T) {
	_, rdb := newMiniredis(t)
	ctx := context.Background()

	_, _, err := TryLock(ctx, rdb, "", time.Second)
	assert.Error(t, err)
	_, _, err = TryLock(ctx, rdb, "k", 0)
	assert.Error(t, err)
}

func TestLock_ExpiredHolderCannotReleaseNewOwner(t *testing.T) {
	mr, rdb := newMiniredis(t)
	ctx := context.Background()

	unlockA, err := Lock(ctx, rdb, "lock:w1", time.Second, 5*time.Millisecond)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	unlockB, err := Lock(ctx, rdb, "lock:w1", time.Second, 5*time.Millisecond)
	require.NoError(t, err)

	assert.ErrorIs(t, unlockA(ctx), ErrLockLost)

	_, ok, err := TryLock(ctx, rdb, "lock:w1", time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "a third caller must not get in while B holds the lock")

	require.NoError(t, unlockB(ctx))
	assert.False(t, mr.Exists("lock:w1"))
}

func TestLock_TimesOutWhileHeld(t *testing.T) {
	_, rdb := newMiniredis(t)
	ctx := context.Background()

	unlock, err := Lock(ctx, rdb, "lock:w", 5*time.Second, 5*time.Millisecond)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = Lock(waitCtx, rdb, "lock:w", 5*time.Second, 5*time.Millisecond)
	assert.True(t, errors.Is(err, ErrLockTimeout), "got %v", err)

	require.NoError(t, unlock(ctx))

	unlock2, err := Lock(ctx, rdb, "lock:w", 5*time.Second, 5*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}
