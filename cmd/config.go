package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	PublisherKafka = "kafka"
	PublisherRedis = "redis"
	PublisherLog   = "log"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSslMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"orchestrator.db"`

	Publisher              string        `env:"PUBLISHER" envDefault:"log"`
	KafkaBrokers           []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrderCreatedTopic string        `env:"KAFKA_ORDER_CREATED_TOPIC" envDefault:"order-created"`
	RedisURL               string        `env:"REDIS_URL"`
	RedisStreamMaxLen      int64         `env:"REDIS_STREAM_MAX_LEN" envDefault:"100000"`
	PublishTimeout         time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"5s"`
	PublishMaxRetries      uint64        `env:"PUBLISH_MAX_RETRIES" envDefault:"3"`
	NotifyMode             string        `env:"NOTIFY_MODE" envDefault:"best-effort"`

	PendingScanSchedule string        `env:"PENDING_SCAN_SCHEDULE" envDefault:"0 */5 * * * *"`
	PendingStaleAfter   time.Duration `env:"PENDING_STALE_AFTER" envDefault:"15m"`

	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	OTELServiceName string        `env:"OTEL_SERVICE_NAME" envDefault:"orchestrator"`
	OTELEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseEnv reads Config from the environment and checks the driver choices.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.Publisher = strings.ToLower(strings.TrimSpace(cfg.Publisher))

	switch cfg.StoreDriver {
	case StorePostgres, StoreSQLite, StoreMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER %q is not one of postgres, sqlite, memory", cfg.StoreDriver)
	}

	switch cfg.Publisher {
	case PublisherKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return Config{}, fmt.Errorf("KAFKA_BROKERS is required for the kafka publisher")
		}
	case PublisherRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL is required for the redis publisher")
		}
	case PublisherLog:
	default:
		return Config{}, fmt.Errorf("PUBLISHER %q is not one of kafka, redis, log", cfg.Publisher)
	}

	return cfg, nil
}
