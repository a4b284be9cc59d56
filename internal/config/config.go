// Package config loads server settings from .env files and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data modes.
const (
	ModeDemo     = "demo"
	ModeDatabase = "database"
)

type Config struct {
	AppPort string `mapstructure:"app_port"`
	GinMode string `mapstructure:"gin_mode"`

	// DataMode is "demo" (in-memory fixture) or "database". Left empty it is
	// derived from DBDSN.
	DataMode string `mapstructure:"data_mode"`
	DBDriver string `mapstructure:"db_driver"`
	DBDSN    string `mapstructure:"db_dsn"`
	SeedDemo bool   `mapstructure:"seed_demo"`

	SessionSecret string `mapstructure:"session_secret"`
	// AuthHeader names the header an upstream auth proxy uses to pass the
	// signed-in profile id. Empty disables it.
	AuthHeader string `mapstructure:"auth_header"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// devSessionSecret signs demo sessions when SESSION_SECRET is unset.
const devSessionSecret = "dev_fallback_secret"

var defaults = map[string]any{
	"app_port":       "8080",
	"gin_mode":       "release",
	"data_mode":      "",
	"db_driver":      "postgres",
	"db_dsn":         "",
	"seed_demo":      false,
	"session_secret": devSessionSecret,
	"auth_header":    "",
	"log_level":      "INFO",
	"log_format":     "text",
}

// Load applies .env files from the working directory and up to two parents
// (nearest wins, so it also works when started from cmd/server), then reads
// settings from the environment.
func Load() (*Config, error) {
	for _, f := range []string{"../../.env", "../.env", ".env"} {
		_ = godotenv.Overload(f)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DataMode = strings.ToLower(strings.TrimSpace(cfg.DataMode))
	switch cfg.DataMode {
	case "":
		cfg.DataMode = ModeDatabase
		if placeholderDSN(cfg.DBDSN) {
			cfg.DataMode = ModeDemo
		}
	case ModeDemo, ModeDatabase:
	default:
		return nil, fmt.Errorf("unknown DATA_MODE %q", cfg.DataMode)
	}
	if cfg.DataMode == ModeDatabase {
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DATA_MODE=database needs DB_DSN")
		}
		if s := strings.TrimSpace(cfg.SessionSecret); s == "" || s == devSessionSecret || s == "changeme" {
			return nil, fmt.Errorf("DATA_MODE=database needs a real SESSION_SECRET")
		}
	}
	return &cfg, nil
}

// placeholderDSN reports whether dsn is missing or still the sample value.
func placeholderDSN(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return true
	}
	for _, marker := range []string{"your_", "your-project", "changeme"} {
		if strings.Contains(dsn, marker) {
			return true
		}
	}
	return false
}

// Demo reports whether the in-memory fixture backs the storefront.
func (c *Config) Demo() bool { return c.DataMode == ModeDemo }
