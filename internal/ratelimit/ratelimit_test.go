package ratelimit_test

import (
	"testing"

	"github.com/lorekeep/lorekeep-server/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	krl := ratelimit.New(1, 2)
	defer krl.Stop()

	// Burst of 2 tokens available immediately.
	assert.True(t, krl.Allow("10.0.0.1"))
	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := ratelimit.New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))

	// A different key gets its own bucket.
	assert.True(t, krl.Allow("10.0.0.2"))
}

func TestKeyedRateLimiter_StopIdempotent(t *testing.T) {
	krl := ratelimit.New(1, 1)
	krl.Stop()
	krl.Stop()
}
