package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	unset(t, "PORT", "HOST", "ACTOR_ID", "HIGHLIGHT_DURATION", "RATE_LIMIT_RPS", "LOG_COMPRESS", "EMBEDDED")
	t.Setenv("EDIT_WINDOW", "garbage")

	cfg := FromEnv()

	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.Equal(t, "me", cfg.ActorID)
	assert.Equal(t, 15*time.Minute, cfg.EditWindow)
	assert.Equal(t, 800*time.Millisecond, cfg.HighlightDuration)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.True(t, cfg.Log.Compress)
	assert.False(t, cfg.Embedded)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("ACTOR_ID", "alice")
	t.Setenv("EDIT_WINDOW", "2m")
	t.Setenv("HIGHLIGHT_DURATION", "1s")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("LOG_MAX_AGE", "7")
	t.Setenv("EMBEDDED", "true")
	t.Setenv("SEED_FILE", "seed.yaml")

	cfg := FromEnv()

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "alice", cfg.ActorID)
	assert.Equal(t, 2*time.Minute, cfg.EditWindow)
	assert.Equal(t, time.Second, cfg.HighlightDuration)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, 7, cfg.Log.MaxAge)
	assert.True(t, cfg.Embedded)
	assert.Equal(t, "seed.yaml", cfg.SeedFile)
}

func TestMaskDBSource(t *testing.T) {
	assert.Equal(t, "postgres://****:****@db:5432/chat", maskDBSource("postgres://u:p@db:5432/chat"))
	assert.Equal(t, "invalid-dsn-format", maskDBSource("nonsense"))
}
