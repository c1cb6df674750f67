package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"time"
)

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"dev"`

	PortalBaseURL     string `default:"https://mon-espace.izly.fr" split_words:"true"`
	PortalLogonPath   string `default:"/Home/Logon" split_words:"true"`
	PortalProfilePath string `default:"/Home/Index" split_words:"true"`

	// The profile page structure is an external contract that may change without
	// notice, so the extraction rule is configuration rather than code.
	VerificationTokenSelector string `default:"input[name='__RequestVerificationToken']" split_words:"true"`
	CardTokenSelector         string `default:"[data-card-token]" split_words:"true"`
	CardTokenAttribute        string `default:"data-card-token" split_words:"true"`
	CardTokenPattern          string `default:"^[0-9A-Za-z]+$" split_words:"true"`

	RequestTimeout time.Duration `default:"30s" split_words:"true"`
	UserAgent      string        `default:"izlyqr/1.0" split_words:"true"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("izly", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return config.Environment == "production" || config.Environment == "prod"
}
