package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full service configuration (mirrors config/config.yaml).
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // HTTP server
	Postgres PostgresConfig `mapstructure:"postgres"` // primary data store
	Auth     AuthConfig     `mapstructure:"auth"`     // hosted auth service
	Billing  BillingConfig  `mapstructure:"billing"`  // payment processor
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"` // listen port
	Mode string `mapstructure:"mode"` // gin mode: debug/release/test
}

// PostgresConfig database connection settings.
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// AuthConfig hosted auth service settings. Tokens are never verified locally;
// the bearer token is forwarded and the resolver's answer is trusted.
type AuthConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// BillingConfig payment processor settings plus the subscription plan table.
type BillingConfig struct {
	BaseURL     string             `mapstructure:"base_url"`
	AccessToken string             `mapstructure:"access_token"`
	Timeout     int                `mapstructure:"timeout"` // seconds
	Proxy       string             `mapstructure:"proxy"`
	BackURL     string             `mapstructure:"back_url"` // redirect target after checkout
	Plans       map[string]float64 `mapstructure:"plans"`    // plan name -> monthly price in ARS
}

// LoadConfig reads config/config.yaml; secrets are overridden from .env /
// the environment (not committed to git).
func LoadConfig() (*Config, error) {
	// 1. load .env if present; env values override same-named yaml fields below
	_ = godotenv.Load()

	// 2. read config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// 3. sensitive fields: env wins over yaml
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv applies environment overrides for sensitive fields.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("AUTH_BASE_URL"); v != "" {
		cfg.Auth.BaseURL = v
	}
	if v := os.Getenv("AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("BILLING_ACCESS_TOKEN"); v != "" {
		cfg.Billing.AccessToken = v
	}
	if v := os.Getenv("BILLING_PROXY"); v != "" {
		cfg.Billing.Proxy = v
	}
}
