package config

import "time"

// Config holds runtime settings for the TruthLens CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - Mock: use the local simulators instead of the HTTP backend.
//   - Dev: development mode; the mock email-change flow exposes the
//     verification code so it can be completed without a mail transport.
//   - RequestTimeout: per-request HTTP timeout.
//   - StorePath: SQLite file holding the session key-value store.
type Config struct {
	APIBaseURL     string
	Mock           bool
	Dev            bool
	RequestTimeout time.Duration
	StorePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.Mock = true
	c.Dev = false
	c.RequestTimeout = 15 * time.Second
	c.StorePath = "truthlens.db"
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
