// Package config provides configuration structures for the application.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all tunables for the engine and its boundaries.
type Config struct {
	// Dimension is the embedding vector width.
	Dimension int `json:"dimension" yaml:"dimension"`

	// MaxLimit caps the limit parameter of a query.
	MaxLimit int `json:"maxLimit" yaml:"maxLimit"`

	// DefaultLimit is used when a caller omits limit.
	DefaultLimit int `json:"defaultLimit" yaml:"defaultLimit"`

	// DefaultThreshold is used when a caller omits threshold.
	DefaultThreshold float64 `json:"defaultThreshold" yaml:"defaultThreshold"`

	// MaxQueryLength caps query length in bytes.
	MaxQueryLength int `json:"maxQueryLength" yaml:"maxQueryLength"`

	// ContextRadius is the number of snippet lines on each side of the
	// best match.
	ContextRadius int `json:"contextRadius" yaml:"contextRadius"`

	// HybridAlpha is the lexical weight in hybrid search mode.
	HybridAlpha float64 `json:"hybridAlpha" yaml:"hybridAlpha"`

	Walker WalkerConfig `json:"walker" yaml:"walker"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// WalkerConfig tunes file discovery for bulk indexing.
type WalkerConfig struct {
	MaxFileSize int64    `json:"maxFileSize" yaml:"maxFileSize"`
	IgnoreDirs  []string `json:"ignoreDirs" yaml:"ignoreDirs"`
}

// ServerConfig identifies the MCP server.
type ServerConfig struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dimension:        128,
		MaxLimit:         100,
		DefaultLimit:     10,
		DefaultThreshold: 0.1,
		MaxQueryLength:   1000,
		ContextRadius:    2,
		HybridAlpha:      0.3,
		Walker: WalkerConfig{
			MaxFileSize: 1 << 20,
		},
		Server: ServerConfig{
			Name:    "codesearch",
			Version: "0.1.0",
		},
	}
}

// Load reads a yaml config file over the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
