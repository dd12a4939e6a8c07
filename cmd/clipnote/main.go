// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the clipnote CLI, which turns
// OpenEvidence web-clipper exports into notes for a markdown vault.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/clipnote/internal/convert"
	"github.com/pdiddy/clipnote/internal/logging"
	"github.com/pdiddy/clipnote/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes.
const (
	ExitFailure    = 1
	ExitInputError = 2
)

// rootCmd is the base command for the clipnote CLI.
var rootCmd = &cobra.Command{
	Use:   "clipnote",
	Short: "Convert OpenEvidence web clippings into vault notes",
	Long: `clipnote converts markdown exported by a web clipper from OpenEvidence
into clean notes: UI boilerplate is removed, citations become footnotes,
figures become inline image fragments with a download manifest, and the
reference list becomes compact footnote definitions under a fresh header.

Use convert for one clipping, batch for a directory, and watch to convert
clippings as they arrive. history lists what the ledger has recorded.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./clipnote.yaml or ~/.config/clipnote/clipnote.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("clipnote")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "clipnote"))
		}
	}

	setDefaults(types.DefaultVaultConfig())

	viper.SetEnvPrefix("CLIPNOTE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger().Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so CLIPNOTE_* variables apply
// even without a config file.
func setDefaults(d types.VaultConfig) {
	viper.SetDefault("area", d.Area)
	viper.SetDefault("document_type", d.DocumentType)
	viper.SetDefault("status", d.Status)
	viper.SetDefault("summary_prefix", d.SummaryPrefix)
	viper.SetDefault("max_topics", d.MaxTopics)
	viper.SetDefault("max_tags", d.MaxTags)
	viper.SetDefault("topic_tags", d.TopicTags)
	viper.SetDefault("log_level", d.LogLevel)
	viper.SetDefault("ledger", d.Ledger)
	viper.SetDefault("manifest_format", d.ManifestFormat)
}

// vaultConfig decodes the merged configuration.
func vaultConfig() (types.VaultConfig, error) {
	var cfg types.VaultConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.VaultConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

func logger() *slog.Logger {
	return logging.BuildLogger(viper.GetString("log_level"))
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, convert.ErrInputNotFound) {
		return ExitInputError
	}
	return ExitFailure
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
