package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDir  = ".config/ccsearch"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary; pointer fields let
// mergeConfig distinguish "absent from file" from "explicitly false/zero".
type rawConfig struct {
	Search rawSearchConfig `json:"search"`
	UI     rawUIConfig     `json:"ui"`
	Keymap KeymapConfig    `json:"keymap"`
}

type rawSearchConfig struct {
	Pattern           string `json:"pattern"`
	DefaultMaxResults *int   `json:"defaultMaxResults"`
	PageSize          *int   `json:"pageSize"`
}

type rawUIConfig struct {
	Theme               string `json:"theme"`
	TruncationByDefault *bool  `json:"truncationByDefault"`
}

// Load loads configuration from the default location,
// ~/.config/ccsearch/config.json, falling back to defaults if absent.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path. If path is empty,
// the default location is used.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)
	cfg.Search.Pattern = ExpandPath(cfg.Search.Pattern)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Search.Pattern != "" {
		cfg.Search.Pattern = raw.Search.Pattern
	}
	if raw.Search.DefaultMaxResults != nil {
		cfg.Search.DefaultMaxResults = *raw.Search.DefaultMaxResults
	}
	if raw.Search.PageSize != nil {
		cfg.Search.PageSize = *raw.Search.PageSize
	}

	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if raw.UI.TruncationByDefault != nil {
		cfg.UI.TruncationByDefault = *raw.UI.TruncationByDefault
	}

	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
