package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/headerauth/internal/flagx"
	"github.com/dmitrijs2005/headerauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "3s" or as integer nanoseconds. Absent keys leave the current
// value untouched.
type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	StorageDriver      string          `json:"storage_driver"`
	SQLitePath         string          `json:"sqlite_path"`
	RedisAddr          string          `json:"redis_addr"`
	RedisPassword      string          `json:"redis_password"`
	HomeRoute          string          `json:"home_route"`
	PhoneRegion        string          `json:"phone_region"`
	LogLevel           string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing is loaded. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	overlay(&cfg.StorageDriver, jc.StorageDriver)
	overlay(&cfg.SQLitePath, jc.SQLitePath)
	overlay(&cfg.RedisAddr, jc.RedisAddr)
	overlay(&cfg.RedisPassword, jc.RedisPassword)
	overlay(&cfg.HomeRoute, jc.HomeRoute)
	overlay(&cfg.PhoneRegion, jc.PhoneRegion)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
