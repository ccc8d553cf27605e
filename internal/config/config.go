package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cart storage backends accepted by CART_STORAGE.
const (
	CartStorageRedis  = "redis"
	CartStorageFile   = "file"
	CartStorageMemory = "memory"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	RunMigrations bool
	JWTSecret     string
	LogLevel      string
	CORSOrigins   string

	CartStorage string
	RedisURL    string
	CartDir     string
	CartTTL     time.Duration

	Gateway GatewayConfig
}

// GatewayConfig configures the payment gateway client and signature checks.
type GatewayConfig struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Currency  string
	Timeout   time.Duration
}

// Load reads a .env file when present and then the process environment.
func Load() Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	port := getEnvOrDefault("PORT", "8080")
	return Config{
		Addr:          ":" + strings.TrimPrefix(port, ":"),
		DatabaseURL:   getEnvOrDefault("DATABASE_URL", ""),
		RunMigrations: getBoolEnv("RUN_MIGRATIONS", true),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		CORSOrigins:   getEnvOrDefault("CORS_ORIGINS", "*"),

		CartStorage: strings.ToLower(getEnvOrDefault("CART_STORAGE", CartStorageMemory)),
		RedisURL:    getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		CartDir:     getEnvOrDefault("CART_DIR", "./data/carts"),
		CartTTL:     getDurationEnv("CART_TTL_HOURS", 24*30, time.Hour),

		Gateway: GatewayConfig{
			BaseURL:   getEnvOrDefault("GATEWAY_BASE_URL", "https://api.razorpay.com"),
			KeyID:     getEnvOrDefault("GATEWAY_KEY_ID", ""),
			KeySecret: getEnvOrDefault("GATEWAY_KEY_SECRET", ""),
			Currency:  getEnvOrDefault("GATEWAY_CURRENCY", "INR"),
			Timeout:   getDurationEnv("GATEWAY_TIMEOUT_SECONDS", 15, time.Second),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
