// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data   DataConfig        `toml:"data"`
	Cities map[string]string `toml:"cities"`
}

// DataConfig maps dataset-related settings.
type DataConfig struct {
	Dir      *string `toml:"dir"`
	Parallel *bool   `toml:"parallel"`
}

// DefaultCities is the built-in city registry used when the config file has no [cities] table.
func DefaultCities() map[string]string {
	return map[string]string{
		"chicago":       "chicago.csv",
		"new york city": "new_york_city.csv",
		"washington":    "washington.csv",
	}
}

// CitiesOrDefault returns the configured cities, falling back to DefaultCities.
func (c FileConfig) CitiesOrDefault() map[string]string {
	if len(c.Cities) == 0 {
		return DefaultCities()
	}
	return c.Cities
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	seen := make(map[string]string, len(cfg.Cities))
	for city, src := range cfg.Cities {
		if src == "" {
			return FileConfig{}, fmt.Errorf("city %q has an empty dataset source", city)
		}
		key := strings.ToLower(strings.TrimSpace(city))
		if prev, ok := seen[key]; ok {
			return FileConfig{}, fmt.Errorf("cities %q and %q collide as %q", prev, city, key)
		}
		seen[key] = city
	}
	return cfg, nil
}
