package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the full runtime configuration for the Integraph service.
type Config struct {
	Server   ServerConfig   `koanf:"server"   validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Auth     AuthConfig     `koanf:"auth"     validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"`
	Port            int           `koanf:"port"             validate:"min=1,max=65535"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port the server binds to.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains connection settings for the postgres store.
type DatabaseConfig struct {
	ConnString  string `koanf:"conn_string"`
	Host        string `koanf:"host"`
	Port        string `koanf:"port"`
	User        string `koanf:"user"`
	Password    string `koanf:"password"`
	Name        string `koanf:"name"`
	SSLMode     string `koanf:"ssl_mode"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// DSN assembles a postgres connection string, preferring an explicit
// conn_string when set.
func (d *DatabaseConfig) DSN() string {
	if d.ConnString != "" {
		return d.ConnString
	}
	parts := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"user=" + d.User,
		"dbname=" + d.Name,
	}
	if d.Password != "" {
		parts = append(parts, "password="+d.Password)
	}
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	parts = append(parts, "sslmode="+sslMode)
	return strings.Join(parts, " ")
}

// AuthConfig contains bearer-token settings.
type AuthConfig struct {
	Enabled   bool          `koanf:"enabled"`
	JWTSecret string        `koanf:"jwt_secret" validate:"required_if=Enabled true"`
	TokenTTL  time.Duration `koanf:"token_ttl"  validate:"min=0"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default returns the configuration baseline applied before any overrides.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			CORSOrigins:     []string{"http://localhost:3000"},
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:        "localhost",
			Port:        "5432",
			User:        "postgres",
			Name:        "integraph",
			SSLMode:     "disable",
			AutoMigrate: true,
		},
		Auth: AuthConfig{
			Enabled:  true,
			TokenTTL: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
