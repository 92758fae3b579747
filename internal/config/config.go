// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the stock service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	Audit    AuditConfig
	Stock    StockConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL              string
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
}

// AuthConfig configures bearer-token verification.
// Identity is issued elsewhere; this service only verifies.
type AuthConfig struct {
	Enabled   bool
	JWTSecret string
	Issuer    string
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string
	Development bool
}

// AuditConfig configures the change-audit trail.
type AuditConfig struct {
	Enabled bool
}

// StockConfig configures the balance summary projection.
// A zero RefreshInterval disables the background rebuild.
type StockConfig struct {
	RefreshInterval time.Duration
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from the environment. Every key has a
// development default except DATABASE_URL, which is required.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.statement_timeout", 30*time.Second)

	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.issuer", "gudang-sah")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("audit.enabled", true)

	v.SetDefault("stock.refresh_interval", 5*time.Minute)

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			URL:              v.GetString("database.url"),
			MaxConns:         int32(v.GetInt("database.max_conns")),
			MinConns:         int32(v.GetInt("database.min_conns")),
			StatementTimeout: v.GetDuration("database.statement_timeout"),
		},
		Auth: AuthConfig{
			Enabled:   v.GetBool("auth.enabled"),
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Audit: AuditConfig{
			Enabled: v.GetBool("audit.enabled"),
		},
		Stock: StockConfig{
			RefreshInterval: v.GetDuration("stock.refresh_interval"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required when auth is enabled")
	}

	return cfg, nil
}
