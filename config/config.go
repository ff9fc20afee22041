// Package config loads process configuration from the environment.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// MinSigningKeyBytes is the smallest decoded key accepted for HS256.
const MinSigningKeyBytes = 32

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Supported password schemes.
const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

var (
	// ErrMissingSigningSecret is returned when JWT_SIGNING_SECRET is unset or blank.
	ErrMissingSigningSecret = errors.New("JWT_SIGNING_SECRET is not set")
	// ErrMalformedSigningSecret is returned when the secret is not valid base64.
	ErrMalformedSigningSecret = errors.New("JWT_SIGNING_SECRET is not valid base64")
	// ErrShortSigningSecret is returned when the decoded secret is too short for HS256.
	ErrShortSigningSecret = fmt.Errorf("JWT_SIGNING_SECRET must decode to at least %d bytes", MinSigningKeyBytes)
)

// Config holds the startup configuration of the service.
type Config struct {
	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":8000"`
	SigningSecret      string        `envconfig:"JWT_SIGNING_SECRET"`
	DBDriver           string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN              string        `envconfig:"DB_DSN" default:"product_manager.db"`
	DBDebug            bool          `envconfig:"DB_DEBUG" default:"false"`
	PasswordScheme     string        `envconfig:"PASSWORD_SCHEME" default:"plain"`
	CORSAllowedOrigins string        `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// Load reads an optional .env file, then the process environment, and
// validates the result. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enum fields and that the signing secret decodes to a usable key.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}

	switch c.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeBcrypt:
	default:
		return fmt.Errorf("unsupported PASSWORD_SCHEME %q", c.PasswordScheme)
	}

	if _, err := c.SigningKey(); err != nil {
		return err
	}

	return nil
}

// SigningKey returns the base64-decoded HMAC key.
func (c *Config) SigningKey() ([]byte, error) {
	if c.SigningSecret == "" {
		return nil, ErrMissingSigningSecret
	}

	key, err := base64.StdEncoding.DecodeString(c.SigningSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSigningSecret, err)
	}

	if len(key) < MinSigningKeyBytes {
		return nil, ErrShortSigningSecret
	}

	return key, nil
}
