package logger

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chat-engine/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	day := time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("logs", "chat-2026-03-09.log"), logFilePath("logs", "chat", day))
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	closer, err := Setup(config.LogConfig{Dir: dir, MaxSize: 1, MaxBackups: 1, MaxAge: 1}, "chat")
	require.NoError(t, err)

	log.Print("[STORE] hello from the test")
	require.NoError(t, closer.Close())

	body, err := os.ReadFile(logFilePath(dir, "chat", time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(body), "[STORE] hello from the test")
}

func TestSetupWithoutDirectory(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	closer, err := Setup(config.LogConfig{}, "chat")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
