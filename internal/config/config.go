package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	RedisURL          string
	PaymentReturnAddr string
	Environment       string
}

func LoadConfig() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080/api"),
		RequestTimeout:    time.Duration(getIntEnv("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		RedisURL:          getEnv("REDIS_URL", ""),
		PaymentReturnAddr: getEnv("PAYMENT_RETURN_ADDR", "127.0.0.1:7533"),
		Environment:       getEnv("ENVIRONMENT", "development"),
	}, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
