package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	UI      UIConfig
}

// APIConfig points the gateway at the backend.
type APIConfig struct {
	BaseURL string
}

// SessionConfig selects where the durable session entries live.
type SessionConfig struct {
	Backend  string
	FilePath string
}

// RedisConfig holds Redis connection values for the redis session backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// UIConfig controls presentation-level timing.
type UIConfig struct {
	BannerTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		},
		Session: SessionConfig{
			Backend:  getEnv("SESSION_BACKEND", "file"),
			FilePath: getEnv("SESSION_FILE", defaultSessionFile()),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		UI: UIConfig{
			BannerTTLSeconds: getEnvAsInt("UI_BANNER_TTL_SECONDS", 4),
		},
	}

	return cfg, nil
}

// BannerTTL returns how long transient confirmation banners stay visible.
func (u UIConfig) BannerTTL() time.Duration {
	if u.BannerTTLSeconds <= 0 {
		return 4 * time.Second
	}
	return time.Duration(u.BannerTTLSeconds) * time.Second
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rideshare/session.json"
	}
	return filepath.Join(home, ".rideshare", "session.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
