package config

import "time"

// Config holds runtime settings for the FlixVault CLI.
//
// Fields:
//   - DatabaseDSN: DSN of the document store (SQLite file path by default).
//   - RemoteTimeout: per-operation deadline for remote store calls.
//   - TokenSecret: key used to verify session tokens.
type Config struct {
	DatabaseDSN   string
	RemoteTimeout time.Duration
	TokenSecret   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "flixvault.db"
	c.RemoteTimeout = 5 * time.Second
	c.TokenSecret = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
