// internal/config/config.go
//
// Runtime configuration, read from the environment (main loads .env first
// via godotenv). Every knob has a default so the server starts with no
// configuration at all.
//
// Environment variables:
//   ADDR               game endpoint listen address      (default :8000)
//   STATIC_ROOT        directory for static lookups      (default .)
//   WORDS_FILE         dictionary, one word per line     (default: embedded list)
//   POOL_SIZE          concurrent workers                (default 8)
//   MIN_MASTER_LEN     master word minimum length        (default 7)
//   SELECT_ATTEMPTS    master selection passes           (default 10)
//   READ_TIMEOUT       per-connection read deadline      (default 10s)
//   WRITE_TIMEOUT      per-connection write deadline     (default 10s)
//   FULL_WRITE_TIMEOUT deadline for the "server full" reply (default 1s)
//   DRAIN_TIMEOUT      unread input discarded before close (default 1s)
//   ADMIN_ADDR         admin/status HTTP address         (default: disabled)
//   ROUNDS_DB          SQLite archive path               (default: in-memory archive)
//   LOG_LEVEL          zerolog level                     (default info)

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything main needs to wire the server.
type Config struct {
	Addr       string
	StaticRoot string
	WordsFile  string

	PoolSize       int
	MinMasterLen   int
	SelectAttempts int

	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	FullWriteTimeout time.Duration
	DrainTimeout     time.Duration

	AdminAddr string
	RoundsDB  string
	LogLevel  string
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:             getEnv("ADDR", ":8000"),
		StaticRoot:       getEnv("STATIC_ROOT", "."),
		WordsFile:        os.Getenv("WORDS_FILE"),
		PoolSize:         getEnvInt("POOL_SIZE", 8),
		MinMasterLen:     getEnvInt("MIN_MASTER_LEN", 7),
		SelectAttempts:   getEnvInt("SELECT_ATTEMPTS", 10),
		ReadTimeout:      getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:     getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
		FullWriteTimeout: getEnvDuration("FULL_WRITE_TIMEOUT", time.Second),
		DrainTimeout:     getEnvDuration("DRAIN_TIMEOUT", time.Second),
		AdminAddr:        os.Getenv("ADMIN_ADDR"),
		RoundsDB:         os.Getenv("ROUNDS_DB"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail later in odd ways.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("ADDR must not be empty")
	case c.StaticRoot == "":
		return errors.New("STATIC_ROOT must not be empty")
	case c.PoolSize < 1:
		return fmt.Errorf("POOL_SIZE must be at least 1, got %d", c.PoolSize)
	case c.MinMasterLen < 1:
		return fmt.Errorf("MIN_MASTER_LEN must be at least 1, got %d", c.MinMasterLen)
	case c.SelectAttempts < 1:
		return fmt.Errorf("SELECT_ATTEMPTS must be at least 1, got %d", c.SelectAttempts)
	case c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.FullWriteTimeout <= 0 || c.DrainTimeout <= 0:
		return errors.New("timeouts must be positive")
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses k as an integer; unparsable values fall back to def.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvDuration parses k with time.ParseDuration; a bare integer is
// taken as seconds.
func getEnvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
