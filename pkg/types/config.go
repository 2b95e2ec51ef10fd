package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds settings for outbound requests to the search API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport defaults.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wiki-search/0.1"). Wikimedia rejects requests without one.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RateLimit caps outbound requests per second. Zero means unlimited.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Language selects the Wikipedia edition (default "en").
	Language string `json:"language" yaml:"language"`

	// Width is the viewport width used to pick the excerpt budget when the
	// caller has no real viewport (CLI output). Default 1000.
	Width int `json:"width" yaml:"width"`
}

// Site returns the Wikipedia host for the configured language.
func (c SearchConfig) Site() string {
	lang := c.Language
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf("%s.wikipedia.org", lang)
}

// Endpoint returns the MediaWiki action API URL for the configured language.
func (c SearchConfig) Endpoint() string {
	return "https://" + c.Site() + "/w/api.php"
}

// ServeConfig holds settings for the HTTP widget server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists the CORS origins allowed to call /api/search.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`
}

// Config groups all settings of the wiki-search CLI.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Serve  ServeConfig  `json:"serve" yaml:"serve"`
	Log    LogConfig    `json:"log" yaml:"log"`
}
