// Package config defines the necessary types to configure the client
// tools. An example config file config.yaml is provided in the repository.
package config

import (
	"time"
)

type Config struct {
	Service Service `yaml:"service"`
	Logger  Logger  `yaml:"logger"`

	// Version is stamped from build information at startup, never read
	// from the file.
	Version string `yaml:"-"`
}

type Service struct {
	BaseURL     string        `yaml:"baseURL" default:"https://api.monarchmoney.com"`
	SessionFile string        `yaml:"sessionFile"`
	Timeout     time.Duration `yaml:"timeout" default:"30s"`
	Retry       Retry         `yaml:"retry"`
}

type Retry struct {
	MaxAttempts int           `yaml:"maxAttempts" default:"3"`
	Interval    time.Duration `yaml:"interval" default:"500ms"`
}

type Logger struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"text"`
}
