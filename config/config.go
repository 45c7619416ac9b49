// Package config loads application settings from config.toml and FSO_
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase/tools/cron"
	"github.com/spf13/viper"

	"serviceorders/services"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Autosave AutosaveConfig
	Pricing  PricingConfig
	Seed     SeedConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Env string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AutosaveConfig controls the draft autosave cron job.
type AutosaveConfig struct {
	Enabled bool
	Cron    string
}

// PricingConfig holds engine settings that change computed totals.
type PricingConfig struct {
	DeductionPolicy services.DeductionPolicy
}

// SeedConfig controls catalog seeding on startup.
type SeedConfig struct {
	Enabled bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with FSO_ prefix (e.g., FSO_LOG_LEVEL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("FSO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("autosave.enabled", true)
	v.SetDefault("seed.enabled", true)

	policy, err := services.ParseDeductionPolicy(v.GetString("pricing.deduction_policy"))
	if err != nil {
		return nil, fmt.Errorf("pricing.deduction_policy: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env: v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Autosave: AutosaveConfig{
			Enabled: v.GetBool("autosave.enabled"),
			Cron:    v.GetString("autosave.cron"),
		},
		Pricing: PricingConfig{
			DeductionPolicy: policy,
		},
		Seed: SeedConfig{
			Enabled: v.GetBool("seed.enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Autosave.Cron == "" {
		cfg.Autosave.Cron = "* * * * *"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Autosave.Enabled {
		if _, err := cron.NewSchedule(c.Autosave.Cron); err != nil {
			return fmt.Errorf("autosave.cron %q: %w", c.Autosave.Cron, err)
		}
	}
	return nil
}

// IsProduction reports whether the app runs with app.env=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
