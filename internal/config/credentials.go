package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Credentials is the environment-sourced login material. Keeping it out of
// the YAML config keeps secrets out of files that get committed.
type Credentials struct {
	Email     string `envconfig:"EMAIL"`
	Password  string `envconfig:"PASSWORD"`
	MFASecret string `envconfig:"MFA_SECRET"`
}

// LoadCredentials reads MONARCH_EMAIL, MONARCH_PASSWORD and
// MONARCH_MFA_SECRET, loading a .env file over the environment first when
// one exists. Missing variables stay empty; interactive flows prompt for
// them instead.
func LoadCredentials() (*Credentials, error) {
	_ = godotenv.Overload()

	creds := new(Credentials)
	if err := envconfig.Process("monarch", creds); err != nil {
		return nil, fmt.Errorf("reading credentials from the environment: %w", err)
	}

	return creds, nil
}
