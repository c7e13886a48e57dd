// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port               string  `mapstructure:"PORT"`
	RedisURL           string  `mapstructure:"REDIS_URL"`
	AllowedOrigins     string  `mapstructure:"ALLOWED_ORIGINS"`
	Env                string  `mapstructure:"APP_ENV"`
	AdminUsername      string  `mapstructure:"ADMIN_USERNAME"`
	AdminPassword      string  `mapstructure:"ADMIN_PASSWORD"`
	SessionTTLHours    int     `mapstructure:"SESSION_TTL_HOURS"`
	LobbySweepInterval int     `mapstructure:"LOBBY_SWEEP_INTERVAL_MINUTES"`
	TracingEnabled     bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter    string  `mapstructure:"TRACING_EXPORTER"`
	TracingEndpoint    string  `mapstructure:"TRACING_ENDPOINT"`
	TracingSampleRate  float64 `mapstructure:"TRACING_SAMPLE_RATE"`
	SeedDemoData       bool    `mapstructure:"SEED_DEMO_DATA"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	// Set default values for development
	viper.SetDefault("PORT", "8375")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("SESSION_TTL_HOURS", 0)
	viper.SetDefault("LOBBY_SWEEP_INTERVAL_MINUTES", 5)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("TRACING_ENDPOINT", "")
	viper.SetDefault("TRACING_SAMPLE_RATE", 1.0)
	viper.SetDefault("SEED_DEMO_DATA", false)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.RedisURL == "" {
		return errors.New("REDIS_URL is required")
	}
	if c.SessionTTLHours < 0 {
		return errors.New("SESSION_TTL_HOURS must not be negative")
	}
	if c.LobbySweepInterval < 0 {
		return errors.New("LOBBY_SWEEP_INTERVAL_MINUTES must not be negative")
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	// Strict checks for production
	if isProduction {
		if c.AdminPassword == "admin123" || c.AdminPassword == "" {
			return errors.New("a strong ADMIN_PASSWORD is required in production")
		}
		if len(c.AdminPassword) < 12 {
			return errors.New("ADMIN_PASSWORD must be at least 12 characters in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else {
		// Development/Test warnings
		if c.AdminPassword == "admin123" {
			log.Println("WARNING: ADMIN_PASSWORD is the default value. Change it before deploying.")
		}
	}

	return nil
}
