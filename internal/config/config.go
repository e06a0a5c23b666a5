package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	Storage     StorageConfig
	Logger      LoggerConfig
}

type StorageConfig struct {
	// Path is the BoltDB file holding the board collection.
	Path   string
	Bucket string
	// Ephemeral keeps everything in memory and skips the file entirely.
	Ephemeral bool
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the tool can run in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskboard"),
		Environment: getString("APP_ENV", "development"),
		Storage: StorageConfig{
			Path:      getString("BOARDS_DB_PATH", "./data/boards.db"),
			Bucket:    getString("BOARDS_BUCKET", "taskboard"),
			Ephemeral: getBool("BOARDS_EPHEMERAL", false),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}
