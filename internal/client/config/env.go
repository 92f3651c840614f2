package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/headerauth/internal/flagx"
)

const defaultEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvServerAddr     = "HEADERAUTH_SERVER_ADDR"
	EnvRequestTimeout = "HEADERAUTH_REQUEST_TIMEOUT"
	EnvStorage        = "HEADERAUTH_STORAGE"
	EnvSQLitePath     = "HEADERAUTH_SQLITE_PATH"
	EnvRedisAddr      = "HEADERAUTH_REDIS_ADDR"
	EnvRedisPassword  = "HEADERAUTH_REDIS_PASSWORD"
	EnvHomeRoute      = "HEADERAUTH_HOME_ROUTE"
	EnvPhoneRegion    = "HEADERAUTH_PHONE_REGION"
	EnvLogLevel       = "HEADERAUTH_LOG_LEVEL"
)

// parseEnv overlays Config with HEADERAUTH_* variables.
//
// A dotenv file is loaded first: the one named by -env, or ./.env when it
// exists. Variables already set in the process environment win over the file.
// Panics when an explicitly named file cannot be read or a duration does not
// parse.
func parseEnv(cfg *Config) {
	path := flagx.EnvFilePath(os.Args[1:])
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	setString(&cfg.ServerEndpointAddr, EnvServerAddr)
	setString(&cfg.StorageDriver, EnvStorage)
	setString(&cfg.SQLitePath, EnvSQLitePath)
	setString(&cfg.RedisAddr, EnvRedisAddr)
	setString(&cfg.RedisPassword, EnvRedisPassword)
	setString(&cfg.HomeRoute, EnvHomeRoute)
	setString(&cfg.PhoneRegion, EnvPhoneRegion)
	setString(&cfg.LogLevel, EnvLogLevel)

	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
