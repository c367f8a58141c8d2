package gitcash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the repository configuration file, relative
// to the ledger root.
const ConfigFile = "gitcash.toml"

// Config holds the ledger-wide settings. It is loaded once per ledger
// open and never mutated afterwards.
type Config struct {
	Name     string   `toml:"name"`
	Currency Currency `toml:"currency"`
}

// Currency defines how minor-unit integers map to display amounts.
type Currency struct {
	Code    string `toml:"code"`
	Divisor uint   `toml:"divisor"`
}

// LoadConfig reads and validates the repository configuration from the
// ledger root directory.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RepoError{Msg: fmt.Sprintf("could not read config %q", path), Err: err}
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &RepoError{Msg: fmt.Sprintf("could not parse config %q", path), Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Name == "" {
		return &RepoError{Msg: "config is missing the ledger name"}
	}
	if c.Currency.Code == "" {
		return &RepoError{Msg: "config is missing the currency code"}
	}
	if c.Currency.Divisor < 1 {
		return &RepoError{Msg: fmt.Sprintf("currency divisor must be positive, got %d", c.Currency.Divisor)}
	}
	return nil
}
