package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DriverPostgres stores data in PostgreSQL.
	DriverPostgres = "postgres"
	// DriverMemory keeps data in process memory. Data is lost on restart.
	DriverMemory = "memory"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel        int           `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	GRPC            GRPC          `envPrefix:"GRPC_"`
	HTTP            HTTP          `envPrefix:"HTTP_"`
	Store           Store         `envPrefix:"STORE_"`
	Database        Database      `envPrefix:"DATABASE_"`
	Redis           Redis         `envPrefix:"REDIS_"`
}

// GRPC contains gRPC server parameters.
type GRPC struct {
	Port               string `env:"PORT" envDefault:"50051"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// HTTP contains REST server parameters.
type HTTP struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Port    string `env:"PORT" envDefault:"8080"`
}

// Store selects the storage backend.
type Store struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
}

// Database contains database connection parameters.
// URL is read as a fallback for deployments that only set DATABASE_URL.
type Database struct {
	DSN string `env:"DSN"`
	URL string `env:"URL"`
}

// Redis contains user cache parameters.
type Redis struct {
	Enabled  bool          `env:"ENABLED" envDefault:"false"`
	Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	UserTTL  time.Duration `env:"USER_TTL" envDefault:"10m"`
}

// NewConfig loads configuration from environment variables. Variables from
// envFiles (".env" when none are given) are applied first without
// overriding the process environment; missing files are ignored.
func NewConfig(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = cfg.Database.URL
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("DATABASE_DSN or DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	return nil
}
