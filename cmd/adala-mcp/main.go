// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the adala-mcp CLI. The serve
// subcommand runs the MCP server; search, download and build-id expose the
// same operations on the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/adala-mcp/internal/adala"
	"github.com/pdiddy/adala-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE and writes to stderr only;
// stdout carries MCP frames when serving over stdio.
var logger = zerolog.Nop()

// rootCmd is the base command for the adala-mcp CLI.
var rootCmd = &cobra.Command{
	Use:   "adala-mcp",
	Short: "MCP server for the Adala legal-document portal",
	Long: `adala-mcp exposes the Adala Justice portal (adala.justice.gov.ma) as MCP
tools: search_adala searches laws, decrees and circulars by keyword, and
download_document saves a document found by search to the local downloads
directory.

Run "adala-mcp serve" from an MCP client configuration. The search, download
and build-id subcommands run the same operations from a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}
		l, err := newLogger(viper.GetString("log_level"), os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	def := types.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./adala-mcp.yaml or ~/.config/adala-mcp/adala-mcp.yaml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("base-url", def.BaseURL, "portal origin")
	flags.String("build-id", def.BuildID, "Next.js build ID of the portal's search data endpoint")
	flags.Duration("timeout", def.Timeout, "search timeout and wait for response headers")
	flags.Duration("download-timeout", def.DownloadTimeout, "time limit for a whole document download")
	flags.String("download-dir", def.DownloadDir, "directory for downloaded documents")

	for key, flag := range map[string]string{
		"log_level":        "log-level",
		"base_url":         "base-url",
		"build_id":         "build-id",
		"timeout":          "timeout",
		"download_timeout": "download-timeout",
		"download_dir":     "download-dir",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	viper.SetDefault("user_agent", def.UserAgent)
	viper.SetDefault("default_limit", def.DefaultLimit)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("adala-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "adala-mcp"))
		}
	}

	viper.SetEnvPrefix("ADALA_MCP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// loadConfig builds the immutable runtime configuration from viper's merged
// view of defaults, config file, environment and flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newClient loads the configuration and returns a portal client for it.
func newClient() (*adala.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return adala.New(cfg, nil, logger), nil
}

// newLogger returns a zerolog logger at level writing to w. Terminals get the
// console format; anything else gets JSON lines.
func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
