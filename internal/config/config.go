package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Backend  BackendConfig
	Cart     CartConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type SessionConfig struct {
	Secret string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CartConfig struct {
	HoldDuration  time.Duration
	PerSectionMax int
	PerEventMax   int
}

type CheckoutConfig struct {
	Currency          string
	ServiceFeePercent int
	Description       string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:9090/api/v1"),
			Timeout: time.Duration(getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Cart: CartConfig{
			HoldDuration:  time.Duration(getEnvAsInt("RESERVATION_HOLD_MINUTES", 10)) * time.Minute,
			PerSectionMax: getEnvAsInt("MAX_TICKETS_PER_SECTION", 6),
			PerEventMax:   getEnvAsInt("MAX_TICKETS_PER_EVENT", 6),
		},
		Checkout: CheckoutConfig{
			Currency:          getEnv("CHECKOUT_CURRENCY", "PEN"),
			ServiceFeePercent: getEnvAsInt("SERVICE_FEE_PERCENT", 10),
			Description:       getEnv("CHECKOUT_DESCRIPTION", "Ticket purchase"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as an integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}
