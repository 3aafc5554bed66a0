package config

import (
	"os"
	"strconv"
)

// Config is loaded once at startup and passed explicitly to the token
// issuer, stores and server. There is no ambient runtime configuration.
type Config struct {
	Port        int
	JWTSecret   string
	DatabaseURL string
	Migrate     bool

	// Per-scanner rate limit for the device-facing scan endpoint.
	ScanRatePerSec float64
	ScanBurst      int

	// Optional bootstrap admin seeded at startup when both are set.
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	cfg := Config{
		Port:           4000,
		JWTSecret:      os.Getenv("RFID_JWT_SECRET"),
		DatabaseURL:    os.Getenv("RFID_DATABASE_URL"),
		Migrate:        true,
		ScanRatePerSec: 5,
		ScanBurst:      10,
		AdminEmail:     os.Getenv("RFID_ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("RFID_ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if v := os.Getenv("RFID_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	}

	if v := os.Getenv("RFID_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Migrate = b
		}
	}

	if v := os.Getenv("RFID_SCAN_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ScanRatePerSec = f
		}
	}
	if v := os.Getenv("RFID_SCAN_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanBurst = n
		}
	}

	return cfg
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}
