package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the graceful shutdown budget.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// Database drivers understood by the server.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig selects and locates the record store.
type DatabaseConfig struct {
	Driver                string `mapstructure:"driver"                  validate:"required,oneof=mongo postgres memory"`
	URL                   string `mapstructure:"url"                     validate:"required_unless=Driver memory"`
	Name                  string `mapstructure:"name"                    validate:"required_if=Driver mongo"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"gte=1"`
}

// ConnectTimeout returns how long to wait for the store to become reachable.
func (d DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(d.ConnectTimeoutSeconds) * time.Second
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"  validate:"required,min=32"`
	BcryptCost int    `mapstructure:"bcrypt_cost" validate:"gte=12,lte=31"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
// An empty list allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
