package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort        string        `envconfig:"APP_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	Log             LogConfig
	Kafka           KafkaConfig
	Events          EventsConfig
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	// File is appended to alongside stdout; empty disables it.
	File string `envconfig:"LOG_FILE" default:"ledger.log"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"ledger-events"`
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
}

type EventsConfig struct {
	Workers   int `envconfig:"EVENTS_WORKERS" default:"5"`
	QueueSize int `envconfig:"EVENTS_QUEUE_SIZE" default:"100"`
}

func NewConfig() (*Config, error) {
	return Load("config.env")
}

// Load reads envFile if it exists, then the process environment. Variables already set
// in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("warning: could not load %s, using process environment only: %v", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort == "" {
		return errors.New("APP_PORT must not be empty")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Events.Workers < 1 {
		return fmt.Errorf("EVENTS_WORKERS must be at least 1, got %d", c.Events.Workers)
	}
	if c.Events.QueueSize < 0 {
		return fmt.Errorf("EVENTS_QUEUE_SIZE must not be negative, got %d", c.Events.QueueSize)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required when kafka is enabled")
		}
	}
	return nil
}

func (l LogConfig) SlogLevel() slog.Level {
	level, _ := parseLevel(l.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not a valid level", s)
	}
	return level, nil
}
