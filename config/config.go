package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	ServerPort  string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	JWTSecret   string
	TokenTTL    time.Duration
	AdminEmail  string
	AdminPass   string
}

// Load returns runtime configuration from environment variables with
// development defaults. JWT_SECRET and DB_PASSWORD carry no defaults and are
// checked at startup.
func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      intEnv("DB_PORT", 5432),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "acadtrack"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    durationEnv("TOKEN_TTL", 24*time.Hour),
		AdminEmail:  getEnv("ADMIN_EMAIL", "admin@acadtrack.local"),
		AdminPass:   os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}
