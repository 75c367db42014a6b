package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// TransactionsConfig holds everything the transactions service needs at boot.
type TransactionsConfig struct {
	ListenAddr   string
	PostgresDSN  string
	KafkaBrokers []string
	UsersAPIURL  string
	LogLevel     string
}

// UsersConfig holds everything the users service needs at boot.
type UsersConfig struct {
	ListenAddr   string
	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers []string
	LogLevel     string
}

func LoadTransactions() *TransactionsConfig {
	loadDotenv()

	cfg := &TransactionsConfig{
		ListenAddr:   getEnv("LISTEN_ADDR", ":3000"),
		PostgresDSN:  getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=transactions sslmode=disable"),
		KafkaBrokers: splitBrokers(getEnv("KAFKA_BROKER", "localhost:9092")),
		UsersAPIURL:  getEnv("USERS_API_URL", "http://localhost:3001"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"users_api_url", cfg.UsersAPIURL)
	return cfg
}

func (c *TransactionsConfig) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN must not be empty")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKER must not be empty")
	}
	if !strings.HasPrefix(c.UsersAPIURL, "http") {
		return fmt.Errorf("USERS_API_URL must be an http(s) URL, got %q", c.UsersAPIURL)
	}
	return nil
}

func LoadUsers() *UsersConfig {
	loadDotenv()

	cfg := &UsersConfig{
		ListenAddr:   getEnv("LISTEN_ADDR", ":3001"),
		PostgresDSN:  getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=users sslmode=disable"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: splitBrokers(getEnv("KAFKA_BROKER", "localhost:9092")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers)
	return cfg
}

func (c *UsersConfig) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN must not be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR must not be empty")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKER must not be empty")
	}
	return nil
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
