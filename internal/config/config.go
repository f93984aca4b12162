// Package config loads finreport settings from environment variables or an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for finreport.
type Config struct {
	VATPercent float64 `mapstructure:"FINREPORT_VAT_PERCENT"`
	LogLevel   string  `mapstructure:"FINREPORT_LOG_LEVEL"`
	Input      string  `mapstructure:"FINREPORT_INPUT"`
	Timezone   string  `mapstructure:"FINREPORT_TIMEZONE"`
}

var keys = []string{
	"FINREPORT_VAT_PERCENT",
	"FINREPORT_LOG_LEVEL",
	"FINREPORT_INPUT",
	"FINREPORT_TIMEZONE",
}

// LoadConfig reads configuration from environment variables, layered over the given
// config file. An empty path looks for .env in the working directory and ignores it if absent.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("FINREPORT_VAT_PERCENT", 7)
	v.SetDefault("FINREPORT_LOG_LEVEL", "info")
	v.SetDefault("FINREPORT_TIMEZONE", "UTC")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(".env")
		v.SetConfigType("env")
	}

	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if c.VATPercent < 0 || c.VATPercent > 100 {
		return fmt.Errorf("%w: FINREPORT_VAT_PERCENT must be between 0 and 100, got %v", ErrInvalidConfig, c.VATPercent)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// VAT returns the VAT percentage as a decimal.
func (c *Config) VAT() decimal.Decimal {
	return decimal.NewFromFloat(c.VATPercent)
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: FINREPORT_LOG_LEVEL %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}

// Location loads the configured report timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: FINREPORT_TIMEZONE %q", ErrInvalidConfig, c.Timezone)
	}
	return loc, nil
}
