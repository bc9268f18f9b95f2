package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Auth Configuration
	AuthJWKSURL   string
	AuthJWTSecret string // HS256 fallback for local development
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitWriteThreshold  int
	// Import Archive Configuration (S3-compatible, optional)
	ArchiveAccessKeyID     string
	ArchiveSecretAccessKey string
	ArchiveRegion          string
	ArchiveBucket          string
	ArchiveEndpoint        string
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignored elsewhere.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Auth Configuration
		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 20),
		// Import Archive Configuration
		ArchiveAccessKeyID:     getEnv("ARCHIVE_ACCESS_KEY_ID", ""),
		ArchiveSecretAccessKey: getEnv("ARCHIVE_SECRET_ACCESS_KEY", ""),
		ArchiveRegion:          getEnv("ARCHIVE_REGION", "ap-southeast-1"),
		ArchiveBucket:          getEnv("ARCHIVE_BUCKET", ""),
		ArchiveEndpoint:        getEnv("ARCHIVE_ENDPOINT", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.AuthJWKSURL == "" && cfg.AuthJWTSecret == "" {
		log.Println("WARNING: Neither AUTH_JWKS_URL nor AUTH_JWT_SECRET is configured. All authenticated requests will be rejected.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and change notifications will use in-process fallbacks.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
