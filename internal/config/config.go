package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	LogLevel    string
	LogJSON     bool

	// Redis backs the API rate limiter. Empty addr means the in-memory
	// fallback limiter is used instead.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// API rate limit per client IP
	APIRateLimit  int // requests per window, 0 disables limiting
	APIRateWindow int // window length in seconds
}

// Load reads configuration from the environment, with .env support
// for local development. Every value has a default, so the service
// starts with no environment at all (sqlite file next to the binary).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "tasks.db"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logJSON := os.Getenv("LOG_JSON") == "true"

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	rateLimit := 100
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			rateLimit = n
		}
	}

	rateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateWindow = n
		}
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		LogLevel:      logLevel,
		LogJSON:       logJSON,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		APIRateLimit:  rateLimit,
		APIRateWindow: rateWindow,
	}
}
