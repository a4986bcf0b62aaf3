package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	SeedData       bool

	RedisURL      string
	StatsCacheTTL time.Duration

	JWT JWTConfig

	Kafka KafkaConfig

	RateLimitPerMin int
	CORSOrigins     []string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "3001"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:  getEnvInt("DB_MAX_IDLE_CONNS", 5),
		SeedData:        getEnvBool("SEED_DATA", false),
		RedisURL:        getEnv("REDIS_URL", ""),
		StatsCacheTTL:   getEnvDuration("STATS_CACHE_TTL", 2*time.Minute),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 300),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Issuer: getEnv("JWT_ISSUER", "attendance-service"),
			TTL:    getEnvDuration("JWT_TTL", 12*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "attendance.events"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
