package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every env tag of Config.
const EnvPrefix = "FITMINT_"

// dotEnvFile is loaded into the process environment when present.
var dotEnvFile = ".env"

// parseEnv overlays FITMINT_* environment variables. Variables already set
// in the environment win over the .env file. Unset variables leave the
// current value alone.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
