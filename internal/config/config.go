// Package config loads and holds ccsearch's persistent settings.
package config

// Config is the root configuration structure.
type Config struct {
	Search SearchConfig `json:"search"`
	UI     UIConfig     `json:"ui"`
	Keymap KeymapConfig `json:"keymap"`
}

// SearchConfig configures default search behavior.
type SearchConfig struct {
	// Pattern is the default file-discovery glob, used when --pattern is
	// not supplied on the command line.
	Pattern string `json:"pattern"`
	// DefaultMaxResults caps one-shot CLI searches when --max-results is
	// not supplied. 0 means uncapped.
	DefaultMaxResults int `json:"defaultMaxResults"`
	// PageSize is loaded and validated, but the interactive driver does not
	// read it: its first page and pagination increment are fixed at 100.
	PageSize int `json:"pageSize"`
}

// UIConfig configures interactive terminal appearance.
type UIConfig struct {
	Theme               string `json:"theme"`
	TruncationByDefault bool   `json:"truncationByDefault"`
}

// KeymapConfig holds key binding overrides, keyed by logical action name.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Pattern:           "~/.claude/projects/**/*.jsonl",
			DefaultMaxResults: 0,
			PageSize:          100,
		},
		UI: UIConfig{
			Theme:               "default",
			TruncationByDefault: true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

// Validate normalizes out-of-range values rather than rejecting the
// config wholesale.
func (c *Config) Validate() error {
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 100
	}
	if c.Search.DefaultMaxResults < 0 {
		c.Search.DefaultMaxResults = 0
	}
	return nil
}
