package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Embedded default configuration; a local config.toml overrides it.
//
//go:embed default_config.toml
var embeddedConfigData []byte

// Config holds the application configuration.
type Config struct {
	Exclude ExcludeConfig `toml:"exclude"`
	Limits  LimitsConfig  `toml:"limits"`
}

// ExcludeConfig controls which callee owners are kept out of the graphs.
type ExcludeConfig struct {
	Stdlib        bool     `toml:"stdlib"`
	OwnerPrefixes []string `toml:"owner_prefixes"`
}

// LimitsConfig bounds route enumeration against pathological graphs.
type LimitsConfig struct {
	MaxRoutes int `toml:"max_routes"`
	MaxDepth  int `toml:"max_depth"`
}

// DefaultConfig returns the embedded configuration, replaced by a local
// config.toml when one is present next to the working directory.
func DefaultConfig() (*Config, error) {
	var config Config
	if err := toml.Unmarshal(embeddedConfigData, &config); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config: %w", err)
	}

	localConfigPaths := []string{
		"config.toml",
		"../config.toml",
	}

	for _, path := range localConfigPaths {
		if _, err := os.Stat(path); err == nil {
			localConfig, err := LoadFromFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load local config %s: %v\n", path, err)
				break
			}
			return localConfig, nil
		}
	}

	return &config, nil
}

// LoadFromFile loads configuration from a TOML file.
func LoadFromFile(filepath string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(filepath, &config); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", filepath, err)
	}
	return &config, nil
}

// AddOwnerPrefixes appends extra exclusion prefixes (CLI -exclude flag).
func (c *Config) AddOwnerPrefixes(prefixes []string) {
	c.Exclude.OwnerPrefixes = append(c.Exclude.OwnerPrefixes, prefixes...)
}

// IsExcludedOwner reports whether calls into the given owner namespace are
// kept out of the graphs. The sentinel owner is never excluded.
func (c *Config) IsExcludedOwner(owner string) bool {
	if owner == "" || strings.HasPrefix(owner, "?") {
		return false
	}
	if c.Exclude.Stdlib && isStandardLibrary(owner) {
		return true
	}
	for _, prefix := range c.Exclude.OwnerPrefixes {
		if strings.HasPrefix(owner, prefix) {
			return true
		}
	}
	return false
}

// isStandardLibrary checks the owner's package path: stdlib package paths
// have no dot in the first segment (net/http, encoding/json), while module
// paths start with a host name. A method owner carries a ".Type" receiver
// qualifier on its last segment; strip it first so "strings.Builder"
// classifies by the "strings" package, not the qualified owner.
func isStandardLibrary(owner string) bool {
	last := strings.LastIndexByte(owner, '/')
	if i := strings.IndexByte(owner[last+1:], '.'); i >= 0 {
		owner = owner[:last+1+i]
	}
	first := owner
	if i := strings.IndexByte(first, '/'); i >= 0 {
		first = first[:i]
	}
	return !strings.Contains(first, ".")
}
