// Package config holds the settings of the fitmint command-line client.
//
// Values are layered: built-in defaults, then FITMINT_* environment
// variables, then a JSON file given with -c/-config, and finally the
// global flags placed before the command name.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every env tag of Config.
const EnvPrefix = "FITMINT_"

// Config holds runtime settings for the FitMint CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the gRPC service.
//   - AccessToken: JWT sent with every call; empty for anonymous reads.
//   - SecretKey: HMAC key used by the token command to mint dev tokens.
//   - TokenTTL: lifetime of minted tokens.
//   - Timeout: deadline applied to each RPC.
type Config struct {
	ServerEndpointAddr string        `env:"SERVER_ADDR"`
	AccessToken        string        `env:"TOKEN"`
	SecretKey          string        `env:"SECRET_KEY"`
	TokenTTL           time.Duration `env:"TOKEN_TTL"`
	Timeout            time.Duration `env:"TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.Timeout = 10 * time.Second
}

// Load builds a Config from defaults, env, the JSON file and the global
// flags in args. It returns the arguments left after the flags, starting
// with the command name.
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, nil, fmt.Errorf("parse env: %w", err)
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Timeout <= 0 {
		return nil, nil, errors.New("timeout must be positive")
	}
	return cfg, rest, nil
}

// parseFlags reads the global flags:
//
//	-a string         address and port of the gRPC service
//	-t string         access token
//	-s string         secret key for the token command
//	-ttl duration     lifetime of minted tokens
//	-timeout duration per-call deadline
//	-c, -config path  JSON config file
//
// The JSON file is applied first so that explicit flags override it.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("fitmint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var jsonFile string
	fs.StringVar(&jsonFile, "config", "", "path to config file")
	fs.StringVar(&jsonFile, "c", "", "path to config file (short)")

	addr := fs.String("a", cfg.ServerEndpointAddr, "address and port to access server")
	token := fs.String("t", cfg.AccessToken, "access token")
	secret := fs.String("s", cfg.SecretKey, "secret key")
	ttl := fs.Duration("ttl", cfg.TokenTTL, "token lifetime")
	timeout := fs.Duration("timeout", cfg.Timeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if jsonFile != "" {
		if err := parseJson(cfg, jsonFile); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerEndpointAddr = *addr
		case "t":
			cfg.AccessToken = *token
		case "s":
			cfg.SecretKey = *secret
		case "ttl":
			cfg.TokenTTL = *ttl
		case "timeout":
			cfg.Timeout = *timeout
		}
	})

	return fs.Args(), nil
}
