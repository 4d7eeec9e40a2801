// Package config holds runtime settings for the authkeeper CLI and the order
// in which they are resolved: defaults, then a JSON file, then flags.
package config

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDSN: path (or DSN) of the local SQLite database backing the
//     key-value store.
//   - LogLevel: minimum level for structured logging (debug/info/warn/error).
type Config struct {
	DatabaseDSN string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "authkeeper.db"
	c.LogLevel = "info"
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
