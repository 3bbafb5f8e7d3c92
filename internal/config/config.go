// Package config holds server configuration, sourced from flags with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FICTIONARY_PORT
const EnvPrefix = "FICTIONARY"

// Config holds all application configuration
type Config struct {
	Bind      string
	Port      int
	Env       string // "development" or "production"
	LogLevel  string
	LogFormat string // "json" or "text"
	TLSCert   string
	TLSKey    string
}

// RegisterFlags declares all flags with their defaults onto the flag set
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: FICTIONARY_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: FICTIONARY_PORT)")
	fs.StringVar(&cfg.Env, "env", "development", "deployment environment, development or production (env: FICTIONARY_ENV)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn or error (env: FICTIONARY_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "log format, text or json (env: FICTIONARY_LOG_FORMAT)")
	fs.StringVar(&cfg.TLSCert, "tls-cert", "", "path to tls certificate (env: FICTIONARY_TLS_CERT)")
	fs.StringVar(&cfg.TLSKey, "tls-key", "", "path to tls keyfile (env: FICTIONARY_TLS_KEY)")
}

// BindEnv overlays FICTIONARY_* environment variables onto any flag the user
// did not set explicitly
func BindEnv(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

// Validate checks the configuration for internal consistency
func (c *Config) Validate() error {
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("invalid env (must be development or production): %s", c.Env)
	}
	return nil
}

// Addr returns the server address in host:port format
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// Scheme returns the URL scheme the server will be reachable on
func (c *Config) Scheme() string {
	if c.TLSCert != "" && c.TLSKey != "" {
		return "https"
	}
	return "http"
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
