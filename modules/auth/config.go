package auth

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the auth module configuration, parsed once from the
// environment at module start. The signing secret has no default: the
// process must not come up without one.
type Config struct {
	DBPath     string        `env:"TASKBOARD_DB_PATH" envDefault:"taskboard.db"`
	JWTSecret  string        `env:"JWT_SECRET,required"`
	TokenTTL   time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"taskboard"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`
}

// LoadConfig parses the auth configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse auth config: %w", err)
	}
	return cfg, nil
}

// TokenConfig returns the immutable token service configuration.
func (c Config) TokenConfig() TokenConfig {
	return TokenConfig{
		Secret: c.JWTSecret,
		TTL:    c.TokenTTL,
		Issuer: c.Issuer,
	}
}
