// Package config holds the shared configuration helpers for the command
// entry points.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable the commands read.
const EnvPrefix = "LIFEWORLD_"

// ParseEnv loads configuration from environment variables. Struct tags
// name the variable without EnvPrefix: `env:"ROWS"` reads LIFEWORLD_ROWS.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
