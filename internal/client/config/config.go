package config

import (
	"fmt"
	"time"
)

// Storage drivers for the persistent session slots.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds runtime settings for the header client.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration

	StorageDriver string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string

	HomeRoute   string
	PhoneRegion string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.StorageDriver = StorageSQLite
	c.SQLitePath = "headerauth.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.HomeRoute = "/home"
	c.PhoneRegion = "VN"
	c.LogLevel = "info"
}

// Validate rejects combinations the client cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite storage needs a database path")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis storage needs an address")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
