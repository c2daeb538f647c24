package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Storage configuration
	DataDir string

	// Redis configuration (rate limiting; optional)
	RedisEnabled     bool
	RedisURL         string
	RedisPoolSize    int
	RedisDialTimeout time.Duration

	// PubNub configuration (optional broadcast mirror)
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubUUID         string

	// Simulation configuration
	CadenceBaseMS int
	CustomerCount int

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Storage
		DataDir: getEnv("DATA_DIR", "./data"),

		// Redis
		RedisEnabled:     getEnvAsBool("REDIS_ENABLED", false),
		RedisURL:         getEnv("REDIS_URL", "localhost:6379"),
		RedisPoolSize:    getEnvAsInt("REDIS_POOL_SIZE", 20),
		RedisDialTimeout: getEnvAsDuration("REDIS_DIAL_TIMEOUT", "5s"),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubUUID:         getEnv("PUBNUB_UUID", "ticket-marketplace"),

		// Simulation
		CadenceBaseMS: getEnvAsInt("CADENCE_BASE_MS", 40000),
		CustomerCount: getEnvAsInt("CUSTOMER_COUNT", 20),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
