package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"business-directory-service/internal/model"
)

type Config struct {
	Environment        string `env:"APP_ENV" envDefault:"development"`
	Port               string `env:"PORT" envDefault:"8081"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	MongoURI           string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase      string `env:"MONGO_DB" envDefault:"business_directory"`
	JWTSecret          string `env:"JWT_SECRET,required"`
	ReviewCreatorRoles string `env:"REVIEW_CREATOR_ROLES" envDefault:"user,admin"`
}

// Load reads configuration from the environment, after loading .env when
// one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// CreatorRoles parses the configured review-creation allowlist. The default
// matches the current policy; set REVIEW_CREATOR_ROLES=user for the
// stricter variant.
func (c *Config) CreatorRoles() ([]model.Role, error) {
	roles, err := model.ParseRoles(c.ReviewCreatorRoles)
	if err != nil {
		return nil, fmt.Errorf("REVIEW_CREATOR_ROLES: %w", err)
	}
	return roles, nil
}
