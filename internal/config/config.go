// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, populated from the environment.
// Mains import godotenv/autoload so a local .env file is honored too.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresHost     string `env:"PG_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"PG_PORT" envDefault:"5432"`
	PostgresDatabase string `env:"PG_DATABASE" envDefault:"hilo"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// SubmissionQueue is the Redis list the archiver drains.
	SubmissionQueue string `env:"SUBMISSION_QUEUE_NAME" envDefault:"hilo_submissions"`

	ArbiterURL    string `env:"ARBITER_URL"`
	ArbiterAPIKey string `env:"ARBITER_API_KEY"`

	ArchiverBatchSize int `env:"ARCHIVER_BATCH_SIZE" envDefault:"20"`
	ArchiverFlushMs   int `env:"ARCHIVER_FLUSH_MS" envDefault:"500"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// PostgresDSN assembles the connection string for pgx.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDatabase)
}
