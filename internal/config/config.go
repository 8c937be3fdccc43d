// Package config reads the daftar CLI configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/xraph/daftar/internal/logger"
)

type Config struct {
	// State file holding the JSON ledger snapshot.
	StateFile string

	// Seller printed in invoice QR codes.
	SellerName string
	SellerVAT  string

	VATRate         decimal.Decimal
	YearlyNumbering bool

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	rate, err := decimal.NewFromString(getEnv("DAFTAR_VAT_RATE", "15"))
	if err != nil {
		return nil, fmt.Errorf("DAFTAR_VAT_RATE: %w", err)
	}
	yearly, err := strconv.ParseBool(getEnv("DAFTAR_YEARLY_NUMBERING", "false"))
	if err != nil {
		return nil, fmt.Errorf("DAFTAR_YEARLY_NUMBERING: %w", err)
	}

	config := &Config{
		StateFile:       getEnv("DAFTAR_STATE_FILE", "daftar.json"),
		SellerName:      getEnv("DAFTAR_SELLER_NAME", ""),
		SellerVAT:       getEnv("DAFTAR_SELLER_VAT", ""),
		VATRate:         rate,
		YearlyNumbering: yearly,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:   getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:       getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.StateFile == "" {
		return fmt.Errorf("DAFTAR_STATE_FILE is required")
	}
	if c.VATRate.IsNegative() || c.VATRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("DAFTAR_VAT_RATE must be between 0 and 100, got %s", c.VATRate)
	}
	if c.SellerVAT != "" && len(c.SellerVAT) != 15 {
		return fmt.Errorf("DAFTAR_SELLER_VAT must be 15 digits, got %d", len(c.SellerVAT))
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
