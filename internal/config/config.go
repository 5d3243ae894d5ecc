// Package config loads the optional user configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config holds the user-tunable defaults from
// $XDG_CONFIG_HOME/jmes/config.hcl. Flags override all of these.
type Config struct {
	// Pager is the pager command line, e.g. "less -R". Empty falls
	// back to $PAGER, then "less -R".
	Pager string `hcl:"pager,optional"`
	// Theme is the chroma style used when colorizing JSON and YAML.
	Theme string `hcl:"theme,optional"`
	// Paging toggles the pager by default; nil means enabled.
	Paging *bool `hcl:"paging,optional"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{Theme: "monokai"}
}

// PagingEnabled resolves the tri-state toggle.
func (c *Config) PagingEnabled() bool {
	return c.Paging == nil || *c.Paging
}

// Load reads the config file from the user config directory. A missing
// file yields the defaults; a malformed one is an error carrying the
// HCL diagnostic.
func Load() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(dir, "jmes", "config.hcl"))
}

// LoadFile reads a specific config file path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	cfg := Default()
	if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Theme == "" {
		cfg.Theme = "monokai"
	}
	return cfg, nil
}
