/*
Copyright © 2026 Dmytro Verbin <dmytro.verbin@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.3.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "doctran",
	Short: "Formatting-preserving document translator",
	Long: `A CLI application that translates Word documents and plain text while
preserving every piece of formatting. Document text is split on run
boundaries, translated segment by segment with a rolling context window,
and written back onto the original runs; everything else in the document
package passes through byte for byte.

Supported services: an OpenAI-compatible LLM endpoint (default) and
Google Translate.

Use "doctran translate --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.doctran.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Service configuration is shared by every subcommand and may come
	// from flags, DOCTRAN_* environment variables, or the config file.
	rootCmd.PersistentFlags().String("service", "llm", "Translation service: llm or google")
	rootCmd.PersistentFlags().String("model", "", "Model name for the LLM service")
	rootCmd.PersistentFlags().String("api-key", "", "API key for the LLM service")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL for an OpenAI-compatible endpoint")
	rootCmd.PersistentFlags().StringP("credentials", "c", "", "Path to Google Cloud credentials")
	rootCmd.PersistentFlags().StringP("project", "p", "", "Google Cloud Project ID")
	rootCmd.PersistentFlags().Duration("timeout", 60*time.Second, "Per-call service timeout")
	rootCmd.PersistentFlags().String("db", "./data/doctran.db", "Glossary database path")

	for _, key := range []string{"service", "model", "api-key", "base-url", "credentials", "project", "timeout", "db"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "flag binding failed: %v\n", err)
			os.Exit(1)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".doctran")
		}
	}

	viper.SetEnvPrefix("doctran")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; a broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "failed to read config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// newLogger builds the CLI's logger. All diagnostics go to stderr so that
// stdout stays clean for command output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
