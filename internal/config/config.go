package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser  string
	DBPass  string
	DBHost  string
	DBPort  string
	DBName  string
	SSLMode string

	RedisHost string
	RedisPort string

	BusProvider string // "nats" or "amqp"
	NatsHost    string
	NatsPort    string
	AmqpUser    string
	AmqpPass    string
	AmqpHost    string
	AmqpPort    string

	PaymentPort string
	OrderPort   string

	OutboxPollInterval time.Duration
}

// New loads and validates service configuration from environment variables.
// Redis is only dialed by the payment service, but its address is validated
// here so a misconfigured deployment fails at startup, not on first cache read.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:  os.Getenv("SHOP_POSTGRES_USER"),
		DBPass:  os.Getenv("SHOP_POSTGRES_PASSWORD"),
		DBHost:  os.Getenv("SHOP_POSTGRES_HOST"),
		DBPort:  getEnv("SHOP_POSTGRES_PORT", "5432"),
		DBName:  os.Getenv("SHOP_POSTGRES_DB"),
		SSLMode: getEnv("SHOP_POSTGRES_SSLMODE", "disable"),

		RedisHost: os.Getenv("SHOP_REDIS_HOST"),
		RedisPort: getEnv("SHOP_REDIS_PORT", "6379"),

		BusProvider: getEnv("SHOP_BUS_PROVIDER", "nats"),
		NatsHost:    os.Getenv("SHOP_NATS_HOST"),
		NatsPort:    getEnv("SHOP_NATS_PORT", "4222"),
		AmqpUser:    getEnv("SHOP_AMQP_USER", "guest"),
		AmqpPass:    getEnv("SHOP_AMQP_PASSWORD", "guest"),
		AmqpHost:    os.Getenv("SHOP_AMQP_HOST"),
		AmqpPort:    getEnv("SHOP_AMQP_PORT", "5672"),

		PaymentPort: getEnv("SHOP_PAYMENT_PORT", "8082"),
		OrderPort:   getEnv("SHOP_ORDER_PORT", "8081"),

		OutboxPollInterval: getEnvDuration("SHOP_OUTBOX_POLL_INTERVAL", 500*time.Millisecond),
	}

	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("missing required env for database: SHOP_POSTGRES_USER/HOST/DB")
	}
	if cfg.RedisHost == "" {
		return nil, fmt.Errorf("missing required env: SHOP_REDIS_HOST")
	}

	switch cfg.BusProvider {
	case "nats":
		if cfg.NatsHost == "" {
			return nil, fmt.Errorf("missing required env for nats bus: SHOP_NATS_HOST")
		}
	case "amqp":
		if cfg.AmqpHost == "" {
			return nil, fmt.Errorf("missing required env for amqp bus: SHOP_AMQP_HOST")
		}
	default:
		return nil, fmt.Errorf("invalid bus provider %q, must be 'nats' or 'amqp'", cfg.BusProvider)
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) NatsAddr() string {
	return fmt.Sprintf("nats://%s:%s", c.NatsHost, c.NatsPort)
}

func (c *Config) AmqpAddr() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.AmqpUser, c.AmqpPass, c.AmqpHost, c.AmqpPort)
}

func (c *Config) PaymentAddr() string {
	return ":" + c.PaymentPort
}

func (c *Config) OrderAddr() string {
	return ":" + c.OrderPort
}

// Frontend holds what the console client needs: where the two services live
// and how long to wait before the single post-creation status check.
type Frontend struct {
	PaymentBaseURL string
	OrderBaseURL   string
	StatusDelay    time.Duration
}

func NewFrontend() *Frontend {
	_ = godotenv.Load()

	return &Frontend{
		PaymentBaseURL: getEnv("SHOP_PAYMENT_API", "http://localhost:8082"),
		OrderBaseURL:   getEnv("SHOP_ORDER_API", "http://localhost:8081"),
		StatusDelay:    getEnvDuration("SHOP_STATUS_CHECK_DELAY", time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
