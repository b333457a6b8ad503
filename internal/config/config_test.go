package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT", "SHUTDOWN_TIMEOUT",
	"LOG_LEVEL", "LOG_FILE",
	"KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_ENABLED",
	"EVENTS_WORKERS", "EVENTS_QUEUE_SIZE",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Equal(t, "ledger.log", cfg.Log.File)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "ledger-events", cfg.Kafka.Topic)
	assert.Equal(t, 5, cfg.Events.Workers)
	assert.Equal(t, 100, cfg.Events.QueueSize)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("EVENTS_WORKERS", "2")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2, cfg.Events.Workers)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "7070")

	envFile := filepath.Join(t.TempDir(), "config.env")
	content := "APP_PORT=6060\nKAFKA_TOPIC=from-file\nLOG_FILE=\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTPPort, "process environment wins over the file")
	assert.Equal(t, "from-file", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparsable workers", "EVENTS_WORKERS", "many"},
		{"zero workers", "EVENTS_WORKERS", "0"},
		{"negative queue", "EVENTS_QUEUE_SIZE", "-1"},
		{"unknown level", "LOG_LEVEL", "verbose"},
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon"},
		{"zero timeout", "SHUTDOWN_TIMEOUT", "0s"},
		{"bad bool", "KAFKA_ENABLED", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load("")

			assert.Nil(t, cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoad_KafkaEnabledNeedsTopic(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_TOPIC", "")

	_, err := Load("")

	assert.ErrorContains(t, err, "KAFKA_TOPIC")
}
