// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries need at startup.
type Config struct {
	APIBaseURL string
	APITimeout time.Duration
	DataDir    string
	LogLevel   slog.Level

	// Sandbox server only.
	ListenAddr string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL: getEnv("BACKOFFICE_API_URL", "http://localhost:8080"),
		DataDir:    getEnv("BACKOFFICE_DATA_DIR", defaultDataDir()),
		ListenAddr: getEnv("BACKOFFICE_LISTEN_ADDR", ":8080"),
	}

	timeoutSecs, err := getEnvInt("BACKOFFICE_API_TIMEOUT_SECONDS", 15)
	if err != nil {
		return Config{}, err
	}
	cfg.APITimeout = time.Duration(timeoutSecs) * time.Second

	cfg.LogLevel, err = parseLogLevel(getEnv("BACKOFFICE_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".backoffice"
	}
	return filepath.Join(home, ".backoffice")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: expected an integer, got %q", key, v)
	}
	return n, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
