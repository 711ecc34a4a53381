package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its config file.
const DefaultPath = ".mygrep.yaml"

// Config holds defaults for the command line tool.
type Config struct {
	Verbose  bool   `yaml:"verbose"`
	Trace    bool   `yaml:"trace"`    // log the active states while matching
	Alphabet string `yaml:"alphabet"` // for check
	MaxLen   int    `yaml:"max_len"`  // for check
}

func Default() *Config {
	return &Config{Alphabet: "ab", MaxLen: 5}
}

// Load reads path from fs on top of the defaults. A missing file is not an
// error.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Alphabet == "" {
		return errors.New("alphabet must not be empty")
	}
	if c.MaxLen < 0 {
		return errors.Errorf("max_len must not be negative, got %d", c.MaxLen)
	}
	return nil
}
