package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	MinIOEndpoint     string
	MinIOAccessKey    string
	MinIOSecretKey    string
	MinIOBucket       string
	MinIOUseSSL       bool
	DocumentURLExpiry time.Duration

	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration

	ResendAPIKey string
	FromEmail    string
	Domain       string

	Timezone     string
	SweepEnabled bool
	SweepAt      string
	SweepLockTTL time.Duration

	LogLevel string
	LogDev   bool
	LogFile  string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3001"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 7*24*time.Hour),

		MinIOEndpoint:     getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey:    getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:    getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:       getEnv("MINIO_BUCKET", "northstar-student-docs"),
		MinIOUseSSL:       getBoolEnv("MINIO_USE_SSL", false),
		DocumentURLExpiry: getDurationEnv("DOCUMENT_URL_EXPIRY", time.Hour),

		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RateLimitMax:    getIntEnv("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "alerts@northstarstudent.ca"),
		Domain:       getEnv("DOMAIN", "localhost:3000"),

		Timezone:     getEnv("TIMEZONE", "America/Winnipeg"),
		SweepEnabled: getBoolEnv("SWEEP_ENABLED", true),
		SweepAt:      getEnv("SWEEP_AT", "08:00"),
		SweepLockTTL: getDurationEnv("SWEEP_LOCK_TTL", 30*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", ""),
		LogDev:   getBoolEnv("LOG_DEV", false),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Location resolves the deployment timezone. Day boundaries for checkpoints,
// week windows and due dates are computed in this location.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
