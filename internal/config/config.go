package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int     `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP    `envPrefix:"HTTP_"`
	Storage  Storage `envPrefix:"STORAGE_"`
	JWT      JWT     `envPrefix:"JWT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool          `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string        `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string        `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// Storage contains file storage parameters. DataDir holds one collection
// file per user; UserFile is the shared user table.
type Storage struct {
	DataDir  string        `env:"DATA_DIR" envDefault:"data"`
	UserFile string        `env:"USER_FILE" envDefault:"users.yml"`
	LockWait time.Duration `env:"LOCK_WAIT" envDefault:"5s"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret     string        `env:"SECRET" envDefault:"devsecret"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
