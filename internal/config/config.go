package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config is the service configuration read from the environment.
type Config struct {
	Env      string `env:"ENV" env-default:"development"`
	Port     string `env:"PORT" env-default:"3000"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Storage  string `env:"STORAGE_DRIVER" env-default:"postgres"`

	// CORSOrigins is a comma separated list passed to the cors middleware.
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"*"`

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Fees     FeeConfig
}

type DatabaseConfig struct {
	Host            string `env:"DB_HOST" env-default:"localhost"`
	Port            string `env:"DB_PORT" env-default:"5432"`
	User            string `env:"DB_USER" env-default:"postgres"`
	Password        string `env:"DB_PASSWORD" env-default:"postgres"`
	Name            string `env:"DB_NAME" env-default:"payout"`
	MaxIdleConns    int    `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int    `env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime string `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	ConnMaxIdleTime string `env:"DB_CONN_MAX_IDLE_TIME" env-default:"30m"`
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port)
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" env-default:"true"`
	Host     string `env:"REDIS_HOST" env-default:"localhost"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`

	StoreTTL       time.Duration `env:"REDIS_STORE_TTL" env-default:"1h"`
	IdempotencyTTL time.Duration `env:"REDIS_IDEMPOTENCY_TTL" env-default:"24h"`
}

type KafkaConfig struct {
	Brokers string `env:"KAFKA_BROKERS" env-default:""`
	Topic   string `env:"KAFKA_TOPIC" env-default:"payout.payments"`
}

// BrokerList splits the comma separated broker list. Empty means disabled.
func (c KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// FeeConfig holds the fee schedule used until one is set through the API.
type FeeConfig struct {
	A string `env:"FEE_A" env-default:"10"`
	B string `env:"FEE_B" env-default:"0.05"`
	D string `env:"FEE_D" env-default:"0.02"`
}

// Values parses the configured fee parameters.
func (c FeeConfig) Values() (a, b, d decimal.Decimal, err error) {
	if a, err = decimal.NewFromString(c.A); err != nil {
		return a, b, d, fmt.Errorf("FEE_A: %w", err)
	}
	if b, err = decimal.NewFromString(c.B); err != nil {
		return a, b, d, fmt.Errorf("FEE_B: %w", err)
	}
	if d, err = decimal.NewFromString(c.D); err != nil {
		return a, b, d, fmt.Errorf("FEE_D: %w", err)
	}
	return a, b, d, nil
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the .env file, if any, and then the environment into a Config.
func Load() (*Config, error) {
	LoadEnv()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage)
	}
	if _, _, _, err := cfg.Fees.Values(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that exits on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
