// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wiki-search CLI.
// See docs/ARCHITECTURE § CLI Surface.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wiki-search/internal/logging"
	"github.com/pdiddy/wiki-search/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds optional contact details and credentials.
const secretsDir = ".secrets/"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// logger is configured from log.level before any subcommand runs.
var logger = slog.Default()

// rootCmd is the base command for the wiki-search CLI.
var rootCmd = &cobra.Command{
	Use:   "wiki-search",
	Short: "Search Wikipedia from the terminal or a small web widget",
	Long: `wiki-search sends a query to the Wikipedia search API and renders the
matching pages with a title, an optional thumbnail, and a short excerpt.

Use "search" for a one-shot query, "interactive" for a prompt that keeps
searching as you type new queries, and "serve" to host the search widget
page over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logger = logging.New(os.Stderr, level)
		slog.SetDefault(logger)

		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "count", len(s))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wiki-search.yaml or ~/.config/wiki-search/config.yaml)")
	rootCmd.PersistentFlags().String("language", "en", "Wikipedia language edition (e.g. en, de, fr)")
	rootCmd.PersistentFlags().Int("width", 1000, "viewport width used to size result excerpts")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	bindFlag("language", rootCmd.PersistentFlags().Lookup("language"))
	bindFlag("width", rootCmd.PersistentFlags().Lookup("width"))
	bindFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wiki-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wiki-search"))
		}
	}

	viper.SetEnvPrefix("WIKI_SEARCH")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("http.timeout", 10*time.Second)
	viper.SetDefault("http.user_agent", "wiki-search/"+version)
	viper.SetDefault("http.max_retries", 0)
	viper.SetDefault("http.rate_limit", 0.0)
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.allowed_origins", []string{})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
