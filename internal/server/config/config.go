// Package config handles configuration for the server core,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the guildchat core.
//
// Session lifetime and key-derivation cost are compile-time constants in
// their owning packages and are deliberately not configurable here.
type Config struct {
	// DataDir is the root directory for persisted entities. Each entity
	// type lives in its own subdirectory (accounts/, sessions/, guilds/).
	DataDir string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
