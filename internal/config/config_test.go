package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTransactions_Defaults(t *testing.T) {
	cfg := LoadTransactions()

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "http://localhost:3001", cfg.UsersAPIURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTransactions_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("KAFKA_BROKER", "kafka-1:9092, kafka-2:9092")
	t.Setenv("USERS_API_URL", "http://users.internal:3001")

	cfg := LoadTransactions()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "http://users.internal:3001", cfg.UsersAPIURL)
}

func TestTransactionsConfig_Validate(t *testing.T) {
	t.Run("rejects non-http users API URL", func(t *testing.T) {
		cfg := LoadTransactions()
		cfg.UsersAPIURL = "users.internal:3001"
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects empty postgres DSN", func(t *testing.T) {
		cfg := LoadTransactions()
		cfg.PostgresDSN = ""
		require.Error(t, cfg.Validate())
	})
}

func TestLoadUsers_Defaults(t *testing.T) {
	cfg := LoadUsers()

	assert.Equal(t, ":3001", cfg.ListenAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.NoError(t, cfg.Validate())
}

func TestUsersConfig_Validate(t *testing.T) {
	cfg := LoadUsers()
	cfg.RedisAddr = ""
	require.Error(t, cfg.Validate())
}
