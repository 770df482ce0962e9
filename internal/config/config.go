package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type LogConfig struct {
	Dir        string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type Config struct {
	Port     string
	Host     string
	Env      string
	ActorID  string
	Embedded bool

	DatabaseURL string
	SeedFile    string

	EditWindow        time.Duration
	HighlightDuration time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	Log LogConfig
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	log.Println("[CONFIG] Attempting to load .env file...")

	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] ℹ️ No .env file found, relying on system environment variables")
	} else {
		log.Println("[CONFIG] ✅ Successfully loaded .env file")
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone. Unparsable values
// fall back to their defaults.
func FromEnv() *Config {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Host:     getEnv("HOST", "localhost"),
		Env:      getEnv("APP_ENV", "development"),
		ActorID:  getEnv("ACTOR_ID", "me"),
		Embedded: getBool("EMBEDDED", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SeedFile:    getEnv("SEED_FILE", ""),

		EditWindow:        getDuration("EDIT_WINDOW", 15*time.Minute),
		HighlightDuration: getDuration("HIGHLIGHT_DURATION", 800*time.Millisecond),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),

		Log: LogConfig{
			Dir:        getEnv("LOG_DIR", ""),
			MaxSize:    getInt("LOG_MAX_SIZE", 10),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     getInt("LOG_MAX_AGE", 30),
			Compress:   getBool("LOG_COMPRESS", true),
		},
	}

	log.Printf("[CONFIG] Environment: %s", cfg.Env)
	log.Printf("[CONFIG] Target address: %s (actor %s)", cfg.Addr(), cfg.ActorID)

	switch {
	case cfg.DatabaseURL != "":
		log.Printf("[CONFIG] Database URL detected: %s", maskDBSource(cfg.DatabaseURL))
	case cfg.SeedFile != "":
		log.Printf("[CONFIG] Seeding chats from %s", cfg.SeedFile)
	default:
		log.Println("[CONFIG] No DATABASE_URL or SEED_FILE, using the built-in directory")
	}

	log.Println("[CONFIG] All configuration variables successfully initialized")
	return cfg
}

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Printf("[CONFIG] ⚠️  Variable %s not found, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func parsed[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("[CONFIG] ⚠️  Variable %s=%q is invalid (%v), using default: %v", key, raw, err, defaultValue)
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	return parsed(key, defaultValue, strconv.Atoi)
}

func getBool(key string, defaultValue bool) bool {
	return parsed(key, defaultValue, strconv.ParseBool)
}

func getFloat(key string, defaultValue float64) float64 {
	return parsed(key, defaultValue, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	return parsed(key, defaultValue, time.ParseDuration)
}

func maskDBSource(dsn string) string {
	parts := strings.Split(dsn, "@")
	if len(parts) < 2 {
		return "invalid-dsn-format"
	}
	return "postgres://****:****@" + parts[len(parts)-1]
}
