package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Config holds process-level settings for the CLI and HTTP server.
type Config struct {
	DBPath            string
	HTTPAddr          string
	LogCalls          bool
	LogLevel          slog.Level
	ShutdownTimeoutMs int
}

// DefaultConfig stores data under ~/.hackherth and listens on :3001.
func DefaultConfig() Config {
	return Config{
		DBPath:            defaultDBPath(),
		HTTPAddr:          ":3001",
		LogCalls:          false,
		LogLevel:          slog.LevelInfo,
		ShutdownTimeoutMs: 5000,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hackherth", "hackherth.db")
	}
	return filepath.Join(home, ".hackherth", "hackherth.db")
}

// LoadConfig loads the env file, then reads HACKHERTH_* variables over the
// defaults. Variables already set in the environment win over the file.
// Malformed values fall back to the default.
func LoadConfig() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()

	if v := os.Getenv("HACKHERTH_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HACKHERTH_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("HACKHERTH_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("HACKHERTH_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("HACKHERTH_SHUTDOWN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ShutdownTimeoutMs = n
		}
	}
	return cfg, nil
}

// loadEnvFile reads HACKHERTH_ENV_FILE when set, else an optional .env in
// the working directory.
func loadEnvFile() error {
	if path := os.Getenv("HACKHERTH_ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", defaultEnvFile, err)
	}
	return nil
}
