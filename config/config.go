// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the envresolve CLI configuration.
//
// The configuration is a small YAML file selecting which provider schemes
// are enabled and, optionally, a default .env file:
//
//	env_file: .env
//	providers:
//	  akv:
//	    enabled: true
//	  env:
//	    enabled: true
//	  file:
//	    enabled: false
//
// By default it is read from the XDG config directory
// (e.g. ~/.config/envresolve/config.yaml). Unknown fields are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// relConfigPath is the config location relative to the XDG config root.
const relConfigPath = "envresolve/config.yaml"

// Provider is the per-scheme configuration.
type Provider struct {
	// Enabled controls whether the scheme's provider is registered.
	Enabled bool `yaml:"enabled"`
}

// Config is the CLI configuration.
type Config struct {
	// EnvFile is a .env file loaded before resolving, or "" for none.
	EnvFile string `yaml:"env_file,omitempty"`

	// Providers maps scheme names to their configuration. Schemes absent
	// from the map use the defaults from Default.
	Providers map[string]Provider `yaml:"providers,omitempty"`
}

// Default returns the configuration used when no config file exists: the
// env and file providers enabled, Azure Key Vault disabled (it requires
// ambient credentials).
func Default() *Config {
	return &Config{
		Providers: map[string]Provider{
			"akv":  {Enabled: false},
			"env":  {Enabled: true},
			"file": {Enabled: true},
		},
	}
}

// DefaultPath returns the default config file location. The parent
// directory is not created.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(relConfigPath)
	if err != nil {
		return "", fmt.Errorf("locating config path: %w", err)
	}
	return path, nil
}

// Load reads the configuration from path, or from DefaultPath when path
// is empty. A missing file yields Default. Unknown YAML fields are an
// error so typos do not silently disable providers.
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Enabled reports whether the scheme's provider should be registered.
func (c *Config) Enabled(scheme string) bool {
	p, ok := c.Providers[scheme]
	return ok && p.Enabled
}
