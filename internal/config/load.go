package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the config at path. When the file cannot be opened the returned
// config holds the defaults and err says why, so callers may run with it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		var cfg Config
		cfg.Defaults()
		return &cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader decodes a config document. An empty document yields defaults.
func FromReader(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
