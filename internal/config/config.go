package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Addr           string        `env:"RUN_ADDRESS" env-default:":8080"`
	DatabaseDSN    string        `env:"DATABASE_DSN"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" env-default:"migrations"`
	JWTSecret      string        `env:"JWT_SECRET" env-default:"privatekey"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	KafkaBrokers     []string      `env:"KAFKA_BROKERS" env-default:"localhost:9092" env-separator:","`
	BalanceTopic     string        `env:"KAFKA_BALANCE_EVENTS_TOPIC" env-default:"balance_events"`
	OutboxBatchSize  int           `env:"OUTBOX_BATCH_SIZE" env-default:"10"`
	OutboxPollPeriod time.Duration `env:"OUTBOX_POLL_INTERVAL" env-default:"1s"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.Addr, "a", "", "HTTP server address")
	flag.StringVar(&cfg.DatabaseDSN, "d", "", "database DSN")
	flag.StringVar(&cfg.MigrationsPath, "m", "", "path to migration files")
	flag.Parse()

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	return cfg, nil
}
