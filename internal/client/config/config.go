// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the todokeeper terminal client.
//
// Fields:
//   - ServerBaseURL: base URL of the todo API (e.g., "http://localhost:8080").
//   - RequestTimeout: bound applied to every API request.
//   - AccessToken: access token issued by the identity provider; when empty
//     the client prompts for it at startup.
//   - UserID: explicit owner id. Only meant for local development against
//     the unauthenticated API; normally the id comes from the token.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	AccessToken    string
	UserID         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.RequestTimeout = 5 * time.Second
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
