// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/wiki-search/pkg/types"
)

// envKeyReplacer maps nested keys to env names: http.timeout → WIKI_SEARCH_HTTP_TIMEOUT.
var envKeyReplacer = strings.NewReplacer(".", "_")

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

// loadConfig assembles the typed configuration from flags, environment,
// config file, and defaults, in that order of precedence.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("http.timeout"),
				UserAgent:  loadedSecrets.UserAgent(viper.GetString("http.user_agent")),
				MaxRetries: viper.GetInt("http.max_retries"),
				RateLimit:  viper.GetFloat64("http.rate_limit"),
			},
			Language: strings.TrimSpace(viper.GetString("language")),
			Width:    viper.GetInt("width"),
		},
		Serve: types.ServeConfig{
			Addr:           viper.GetString("serve.addr"),
			AllowedOrigins: viper.GetStringSlice("serve.allowed_origins"),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log.level"),
		},
	}

	if cfg.Search.Width <= 0 {
		return cfg, fmt.Errorf("width must be positive, got %d", cfg.Search.Width)
	}
	if cfg.Search.MaxRetries < 0 {
		return cfg, fmt.Errorf("http.max_retries must not be negative, got %d", cfg.Search.MaxRetries)
	}
	if cfg.Search.RateLimit < 0 {
		return cfg, fmt.Errorf("http.rate_limit must not be negative, got %g", cfg.Search.RateLimit)
	}
	if strings.ContainsAny(cfg.Search.Language, "/.: ") {
		return cfg, fmt.Errorf("invalid language %q", cfg.Search.Language)
	}
	return cfg, nil
}
