package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
)

const configFileName = "config.yaml"

// LoadConfig reads the first config.yaml found under the given directories,
// expanding environment references like $HOME in each. Defaults fill
// whatever the file leaves unset; no file at all yields a pure-default
// configuration.
func LoadConfig(dirs ...string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying configuration defaults: %w", err)
	}

	for _, dir := range dirs {
		path := filepath.Join(os.ExpandEnv(dir), configFileName)

		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		break
	}

	return cfg, nil
}
