package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))
	return mr
}

func TestOTPLimiter_AllowsUpToLimit(t *testing.T) {
	setupMiniredis(t)
	limiter := NewOTPLimiter(3, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "a@example.com")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestOTPLimiter_IdentifiersAreIndependent(t *testing.T) {
	setupMiniredis(t)
	limiter := NewOTPLimiter(1, 15*time.Minute)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "b@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestOTPLimiter_WindowResets(t *testing.T) {
	mr := setupMiniredis(t)
	limiter := NewOTPLimiter(1, time.Minute)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(2 * time.Minute)

	allowed, err = limiter.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestOTPLimiter_IncrError(t *testing.T) {
	orig := incrValue
	incrValue = func(ctx context.Context, key string) (int64, error) {
		return 0, errors.New("redis down")
	}
	defer func() { incrValue = orig }()

	_, err := NewOTPLimiter(3, time.Minute).Allow(context.Background(), "a@example.com")
	assert.Error(t, err)
}

func TestOTPLimiter_ExpireError(t *testing.T) {
	origIncr, origExpire := incrValue, expireValue
	incrValue = func(ctx context.Context, key string) (int64, error) { return 1, nil }
	expireValue = func(ctx context.Context, key string, ttl time.Duration) error {
		return errors.New("redis down")
	}
	defer func() {
		incrValue = origIncr
		expireValue = origExpire
	}()

	_, err := NewOTPLimiter(3, time.Minute).Allow(context.Background(), "a@example.com")
	assert.Error(t, err)
}
