package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPAddr string
	Store    string

	DatabaseURL string
	DBMaxConns  int32

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:    envDefault("HTTP_ADDR", ":8000"),
		Store:       strings.ToLower(envDefault("STORE", StorePostgres)),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:    strings.ToLower(envDefault("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(envDefault("LOG_FORMAT", "json")),
	}

	maxConns, err := strconv.Atoi(envDefault("DB_MAX_CONNS", "10"))
	if err != nil || maxConns < 1 {
		return Config{}, fmt.Errorf("invalid DB_MAX_CONNS")
	}
	cfg.DBMaxConns = int32(maxConns)

	shutdownSec, err := strconv.Atoi(envDefault("SHUTDOWN_TIMEOUT_SECONDS", "5"))
	if err != nil || shutdownSec < 1 {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS")
	}
	cfg.ShutdownTimeout = time.Duration(shutdownSec) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE=%s", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q (want %s or %s)", c.Store, StorePostgres, StoreMemory)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q (want json or text)", c.LogFormat)
	}
	return nil
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}
