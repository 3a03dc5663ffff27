// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every knob the API server and the stockctl tool read at startup.
type Config struct {
	AppName string `envconfig:"APP_NAME" default:"Stock Ledger v1.0"`
	Port    string `envconfig:"PORT" default:"3000"`

	DatabaseURL    string `envconfig:"DATABASE_URL"`
	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBUser         string `envconfig:"DB_USER" default:"postgres"`
	DBPassword     string `envconfig:"DB_PASSWORD"`
	DBName         string `envconfig:"DB_NAME" default:"inventory"`
	DBPort         string `envconfig:"DB_PORT" default:"5432"`
	DBTimeZone     string `envconfig:"DB_TIMEZONE" default:"UTC"`
	DBMaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	DBAutoMigrate  bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	DBLogSQL       bool   `envconfig:"DB_LOG_SQL" default:"false"`

	JWTSecret    string `envconfig:"JWT_SECRET"`
	JWTIssuer    string `envconfig:"JWT_ISSUER"`
	AuthDisabled bool   `envconfig:"AUTH_DISABLED" default:"false"`

	LowStockThreshold    int `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
	MediumStockThreshold int `envconfig:"MEDIUM_STOCK_THRESHOLD" default:"20"`
	RecentSalesLimit     int `envconfig:"RECENT_SALES_LIMIT" default:"5"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	SeedDemo bool `envconfig:"SEED_DEMO" default:"false"`
}

// Load decodes the process environment. Callers load .env beforehand.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects combinations the services cannot work with.
func (c Config) Validate() error {
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be >= 0, got %d", c.LowStockThreshold)
	}
	if c.MediumStockThreshold < c.LowStockThreshold {
		return fmt.Errorf("MEDIUM_STOCK_THRESHOLD (%d) must be >= LOW_STOCK_THRESHOLD (%d)",
			c.MediumStockThreshold, c.LowStockThreshold)
	}
	if c.RecentSalesLimit <= 0 {
		return fmt.Errorf("RECENT_SALES_LIMIT must be > 0, got %d", c.RecentSalesLimit)
	}
	if c.JWTSecret == "" && !c.AuthDisabled {
		return fmt.Errorf("JWT_SECRET is required unless AUTH_DISABLED=true")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBTimeZone,
	)
}
