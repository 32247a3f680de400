// Package config centralizes the environment variables used by the binaries.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates every parameter the API and seed binaries need.
type Config struct {
	HTTPAddress string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CounterKeyPrefix string

	RateLimitEnabled       bool
	RateLimitMaxActions    int
	RateLimitWindowSeconds int
	RateLimitKeyPrefix     string

	AutoMigrate bool

	JWTSecret     string
	VoteSalt      string
	SeedDataDir   string
	HeartbeatSecs int
}

func Load() (Config, error) {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddress:            getEnv("HTTP_ADDRESS", ":8080"),
		PostgresHost:           getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:           getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:           getEnv("POSTGRES_USER", "election"),
		PostgresPassword:       getEnv("POSTGRES_PASSWORD", "election"),
		PostgresDB:             getEnv("POSTGRES_DB", "election_dashboard"),
		PostgresSSLMode:        getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		CounterKeyPrefix:       getEnv("REDIS_COUNTER_PREFIX", "election"),
		RateLimitEnabled:       getEnvAsBool("VOTE_RATE_LIMIT_ENABLED", true),
		RateLimitMaxActions:    getEnvAsInt("VOTE_RATE_LIMIT_MAX", 10),
		RateLimitWindowSeconds: getEnvAsInt("VOTE_RATE_LIMIT_WINDOW", 60),
		RateLimitKeyPrefix:     getEnv("VOTE_RATE_LIMIT_PREFIX", "ratelimit"),
		AutoMigrate:            getEnvAsBool("DB_AUTO_MIGRATE", true),
		JWTSecret:              getEnv("JWT_SECRET", "dev-secret-change-me"),
		VoteSalt:               getEnv("ELECTION_VOTE_SALT", "default-salt"),
		SeedDataDir:            getEnv("SEED_DATA_DIR", "data"),
		HeartbeatSecs:          getEnvAsInt("STREAM_HEARTBEAT_SECONDS", 30),
	}

	dbStr := getEnv("REDIS_DB", "0")
	dbInt, err := strconv.Atoi(dbStr)
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = dbInt

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch value {
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return true
	}
}
