// Package config loads runtime configuration for the header client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables HEADERAUTH_*, optionally seeded from a dotenv
//     file (-env path, or ./.env when present). See parseEnv.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string       address:port of the backend gRPC endpoint
//	-t int          request timeout (seconds)
//	-s string       session storage driver: sqlite or redis
//	-d string       sqlite database path
//	-r string       redis address
//	-region string  default region for phone numbers
//	-l string       log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s",
//	  "storage_driver": "sqlite",
//	  "sqlite_path": "headerauth.db",
//	  "phone_region": "VN"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//   - func (*Config) Validate() error — rejects unusable storage settings
package config
