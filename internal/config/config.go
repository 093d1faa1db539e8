package config

import "time"

// Database drivers understood by the server.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AllowedOrigin is the single cross-origin caller permitted by CORS ("*" for any).
	AllowedOrigin string `mapstructure:"allowed_origin" validate:"required"`

	ReadTimeoutSeconds     int `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	IdleTimeoutSeconds     int `mapstructure:"idle_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ReadTimeout returns the configured read timeout.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the configured write timeout.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the configured keep-alive idle timeout.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long graceful shutdown may take.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL    string `mapstructure:"url" validate:"required_if=Driver postgres"`
	// Name is used as the database when URL does not name one.
	Name string `mapstructure:"name" validate:"required"`

	MaxOpenConns           int  `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns           int  `mapstructure:"max_idle_conns" validate:"gt=0"`
	ConnMaxLifetimeMinutes int  `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
	AutoMigrate            bool `mapstructure:"auto_migrate"`
}

// ConnMaxLifetime returns the maximum lifetime of a pooled connection.
func (c DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMinutes) * time.Minute
}
