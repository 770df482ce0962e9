package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurst(t *testing.T) {
	l := NewRateLimiter(0.001, 3)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestRateLimiterDefaults(t *testing.T) {
	l := NewRateLimiter(0, 0)
	for i := 0; i < defaultBurst; i++ {
		assert.True(t, l.Allow(), "call %d", i)
	}
}
