package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from its env and envDefault struct tags, so command
// configs such as the sandbox's REDOUBT_SANDBOX_DB pick up their defaults
// before flags are applied.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
