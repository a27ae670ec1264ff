package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL   string
	Port          string
	GoEnv         string
	LogLevel      string
	CORSOrigins   []string
	Auth0Domain   string
	Auth0Audience string

	// Auth0WriteScope, when set, is required on every mutating route
	Auth0WriteScope string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Environment-specific file first, then .env; already-set variables win
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("no .env file found, using system environment variables")
		}
	} else {
		log.Debug().Str("file", envFile).Msg("loaded configuration file")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		DatabaseURL:   v.GetString("DATABASE_URL"),
		Port:          v.GetString("PORT"),
		GoEnv:         v.GetString("GO_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
		Auth0Domain:   v.GetString("AUTH0_DOMAIN"),
		Auth0Audience: v.GetString("AUTH0_AUDIENCE"),

		Auth0WriteScope: v.GetString("AUTH0_WRITE_SCOPE"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "fichas.db")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// AuthEnabled reports whether the Auth0 JWT guard should be mounted
func (c *Config) AuthEnabled() bool {
	return c.Auth0Domain != "" && c.Auth0Audience != ""
}

// UsesPostgres reports whether DatabaseURL points at PostgreSQL rather than a SQLite file
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
