/* config.go
 * Contains the bot configuration: matchmaking parameters, approved map pools and the autosave interval. The embedded
 * default.yaml is always loaded first and any files given are applied over it in order
 * Authors: Ahasuerus
 */

package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"ravens-nest/api/match"
	"ravens-nest/api/shared"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

// Matchmaking holds the pairing and rating parameters
type Matchmaking struct {
	BaseEloDiff int `yaml:"baseEloDiff" json:"baseEloDiff"`
	MaxEloDiff  int `yaml:"maxEloDiff" json:"maxEloDiff"`
	KFactor     int `yaml:"kFactor" json:"kFactor"`
}

type Config struct {
	Matchmaking      Matchmaking         `yaml:"matchmaking" json:"matchmaking"`
	Maps             map[string][]string `yaml:"maps" json:"maps"`
	AutosaveInterval time.Duration       `yaml:"autosaveInterval" json:"autosaveInterval"`
}

// Default returns the embedded configuration
func Default() (*Config, error) {
	return Load()
}

// Load reads the embedded defaults and then each file in paths over them
// Preconditions: Receives zero or more paths to yaml files
// Postconditions: Returns the merged and validated config, or an error naming the file that could not be applied
func Load(paths ...string) (*Config, error) {
	config := Config{}
	pools := map[string][]string{}
	if err := config.merge(DEFAULT, pools); err != nil {
		return nil, fmt.Errorf("invalid default config file: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not process config file %s: %w", path, err)
		}
		if err := config.merge(data, pools); err != nil {
			return nil, fmt.Errorf("could not merge config file %s: %w", path, err)
		}
	}
	config.Maps = pools

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// merge applies one yaml document over c. Map pools are keyed by canonical format name so an alias such as
// "flex" replaces the "3v3 flex" pool instead of sitting beside it.
func (c *Config) merge(data []byte, pools map[string][]string) error {
	c.Maps = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}

	seen := make(map[shared.Format]string, len(c.Maps))
	for name, pool := range c.Maps {
		format, err := shared.ParseFormat(name)
		if err != nil {
			return fmt.Errorf("map pool '%s': %w", name, err)
		}
		if other, ok := seen[format]; ok {
			return fmt.Errorf("map pools '%s' and '%s' both name %s", other, name, format)
		}
		seen[format] = name
		pools[string(format)] = pool
	}
	return nil
}

// Validate checks that the matchmaking parameters are usable and every map pool names a real format
func (c *Config) Validate() error {
	if c.Matchmaking.MaxEloDiff < 0 {
		return fmt.Errorf("maxEloDiff must not be negative, got %d", c.Matchmaking.MaxEloDiff)
	}
	if c.Matchmaking.BaseEloDiff < 0 {
		return fmt.Errorf("baseEloDiff must not be negative, got %d", c.Matchmaking.BaseEloDiff)
	}
	if c.Matchmaking.KFactor <= 0 {
		return fmt.Errorf("kFactor must be positive, got %d", c.Matchmaking.KFactor)
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("autosaveInterval must be positive, got %s", c.AutosaveInterval)
	}

	for name, pool := range c.Maps {
		if _, err := shared.ParseFormat(name); err != nil {
			return fmt.Errorf("map pool '%s': %w", name, err)
		}
		if len(pool) == 0 {
			return fmt.Errorf("map pool '%s' is empty", name)
		}
	}
	for _, format := range shared.Formats {
		if len(c.Maps[string(format)]) == 0 {
			return fmt.Errorf("no map pool for %s", format)
		}
	}
	return nil
}

// MapPools returns the map pools keyed by format
func (c *Config) MapPools() match.MapPools {
	pools := make(match.MapPools)
	for name, pool := range c.Maps {
		format, err := shared.ParseFormat(name)
		if err != nil {
			continue
		}
		pools[format] = append(pools[format], pool...)
	}
	return pools
}
