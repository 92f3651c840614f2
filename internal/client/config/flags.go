package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/headerauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       address and port of the backend server
//	-t int          request timeout in seconds
//	-s string       session storage driver: sqlite or redis
//	-d string       sqlite database path
//	-r string       redis address
//	-region string  default region for phone numbers
//	-l string       log level
//
// os.Args is filtered with flagx.FilterArgs first, so -c and -env do not
// trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-d", "-r", "-region", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "session storage: sqlite or redis")
	fs.StringVar(&cfg.SQLitePath, "d", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.PhoneRegion, "region", cfg.PhoneRegion, "default phone number region")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
