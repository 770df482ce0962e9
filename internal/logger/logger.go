package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"chat-engine/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

func logFilePath(dir, prefix string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", prefix, now.Format("2006-01-02")))
}

func rotating(path string, cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// Setup points the standard logger at stdout and, when a log directory is
// configured, a rotating file as well. The returned closer flushes the file.
func Setup(cfg config.LogConfig, prefix string) (io.Closer, error) {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if cfg.Dir == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := logFilePath(cfg.Dir, prefix, time.Now())
	file := rotating(path, cfg)
	log.SetOutput(io.MultiWriter(os.Stdout, file))

	log.Printf("Logging initialized: writing to %s", path)
	return file, nil
}
