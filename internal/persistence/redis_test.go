package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/fitness-service/internal/config"
)

func TestRedisOptionsBoundDenylistCalls(t *testing.T) {
	opts := redisOptions(config.RedisConfig{Addr: "cache:6379", DB: 2, Timeout: 250 * time.Millisecond})

	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "auth-denylist", opts.ClientName)
	assert.Equal(t, 250*time.Millisecond, opts.DialTimeout)
	assert.Equal(t, 250*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, opts.WriteTimeout)
}

func TestRedisOptionsKeepClientDefaultsWithoutTimeout(t *testing.T) {
	opts := redisOptions(config.RedisConfig{Addr: "cache:6379"})

	assert.Zero(t, opts.ReadTimeout)
	assert.Zero(t, opts.DialTimeout)
}

func TestNilRedisPingFails(t *testing.T) {
	var r *Redis
	assert.Error(t, r.Ping(context.Background()))
	assert.NotPanics(t, r.Close)
}
