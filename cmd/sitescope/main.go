// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sitescope CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sitescope/internal/logging"
	"github.com/pdiddy/sitescope/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sitescope CLI.
var rootCmd = &cobra.Command{
	Use:   "sitescope",
	Short: "Measure personalization and tracking in archived websites",
	Long: `sitescope downloads archived snapshots of websites, scores their HTML
against catalogues of personalization and tracking signals, and writes the
results to reports and a local history database.

Each stage is a subcommand: download, sample, personalize, tracking,
catalogue, and history.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sitescope.yaml or ~/.config/sitescope/sitescope.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: debug, info, warn, error")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sitescope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sitescope"))
		}
	}

	viper.SetEnvPrefix("SITESCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	registerDefaults("", reflect.ValueOf(types.DefaultConfig()))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// registerDefaults declares every config key with its default so that
// Unmarshal also picks up keys set only in the environment.
func registerDefaults(prefix string, v reflect.Value) {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		tag, opts, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		fv := v.Field(i)
		if opts == "squash" {
			registerDefaults(prefix, fv)
			continue
		}
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if fv.Kind() == reflect.Struct {
			registerDefaults(key, fv)
			continue
		}
		viper.SetDefault(key, fv.Interface())
	}
}

// loadConfig returns the defaults overlaid with the config file and
// environment.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr diagnostic logger for cfg.
func newLogger(cfg types.Config) *slog.Logger {
	return logging.New(os.Stderr, cfg.Log.Level)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
