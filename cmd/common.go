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
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dverbin/doctran/internal"
	"github.com/dverbin/doctran/internal/detector"
	"github.com/dverbin/doctran/internal/driver"
	"github.com/dverbin/doctran/internal/store"
	"github.com/dverbin/doctran/internal/translator"
	"github.com/dverbin/doctran/internal/validator"
)

// Translation parameters shared by the translate and text commands. Both
// commands register the same flags onto the same variables; only one
// command runs per invocation.
var (
	sourceLang string
	targetLang string
	toneFlag   string
	domainFlag string
	glossary   string

	maxChunkLength   int
	overlapWindow    int
	maxContextLength int

	strict          bool
	batchParagraphs bool
	noValidate      bool
	maxRetries      int
)

func addTranslationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	cmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	cmd.Flags().StringVar(&toneFlag, "tone", "neutral", "Translation tone: neutral, formal, informal, technical")
	cmd.Flags().StringVar(&domainFlag, "domain", "", "Subject domain for terminology (e.g. legal, medical)")
	cmd.Flags().StringVar(&glossary, "glossary", "", `Inline glossary as "term:translation;term:translation" (overrides the database)`)

	cmd.Flags().IntVar(&maxChunkLength, "max-chunk", internal.DefaultMaxChunkLength, "Maximum chunk size in characters")
	cmd.Flags().IntVar(&overlapWindow, "overlap", internal.DefaultOverlapWindow, "Sentence-boundary search window in characters")
	cmd.Flags().IntVar(&maxContextLength, "max-context", internal.DefaultMaxContextLength, "Rolling context window in characters")

	cmd.Flags().BoolVar(&strict, "strict", false, "Abort on the first failed segment instead of keeping its original text")
	cmd.Flags().BoolVar(&batchParagraphs, "batch-paragraphs", false, "Translate each paragraph's segments in a single call")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip the result language check")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 3, "Total attempts per service call including the first (1 = no retries)")

	cobra.CheckErr(cmd.MarkFlagRequired("target"))
}

// buildService constructs the configured translation service, wrapped
// with bounded retry.
func buildService() (translator.TranslationService, translator.ServiceConfig, error) {
	svcCfg := translator.ServiceConfig{
		Credentials: viper.GetString("credentials"),
		APIKey:      viper.GetString("api-key"),
		Model:       viper.GetString("model"),
		BaseURL:     viper.GetString("base-url"),
		ProjectID:   viper.GetString("project"),
		Timeout:     viper.GetDuration("timeout"),
	}

	var svc translator.TranslationService
	switch name := viper.GetString("service"); name {
	case "llm":
		svc = translator.NewLLMService(svcCfg.APIKey, svcCfg.BaseURL, svcCfg.Model)
	case "google":
		svc = translator.NewGoogleService()
	default:
		return nil, svcCfg, fmt.Errorf("unknown service: %s", name)
	}

	retryCfg := translator.DefaultRetryConfig()
	retryCfg.MaxAttempts = maxRetries
	return translator.WithRetry(svc, retryCfg), svcCfg, nil
}

// buildTranslationConfig assembles the per-run translation parameters.
// When no inline glossary is given and the glossary database exists, the
// stored terms for the language pair are used.
func buildTranslationConfig(ctx context.Context) (internal.TranslationConfig, error) {
	cfg := internal.TranslationConfig{
		SourceLang:       sourceLang,
		TargetLang:       targetLang,
		Tone:             internal.Tone(toneFlag),
		Domain:           domainFlag,
		Glossary:         glossary,
		MaxChunkLength:   maxChunkLength,
		OverlapWindow:    overlapWindow,
		MaxContextLength: maxContextLength,
		ContinueOnError:  !strict,
		BatchParagraphs:  batchParagraphs,
	}

	if cfg.Glossary == "" {
		dbPath := viper.GetString("db")
		if _, err := os.Stat(dbPath); err == nil {
			db, err := store.New(dbPath)
			if err != nil {
				return cfg, fmt.Errorf("failed to open glossary database: %w", err)
			}
			defer db.Close()

			terms, err := db.PromptGlossary(ctx, cfg.SourceLang, cfg.TargetLang)
			if err != nil {
				return cfg, fmt.Errorf("failed to load glossary: %w", err)
			}
			cfg.Glossary = terms
		}
	}

	return cfg.Normalized(), nil
}

// newTranslationDriver wires up the driver: the detector only when the
// source language is auto-detected, the validator unless disabled. The
// two share one language model instance.
func newTranslationDriver(log *slog.Logger) (*driver.Driver, error) {
	svc, svcCfg, err := buildService()
	if err != nil {
		return nil, err
	}

	var det *detector.Detector
	if sourceLang == "" || sourceLang == "auto" {
		det = detector.New()
	}

	var val *validator.Validator
	if !noValidate {
		if det != nil {
			val = validator.NewWithDetector(det)
		} else {
			val = validator.New()
		}
	}

	return driver.New(svc, svcCfg, det, val, log), nil
}

// printReport writes the pass summary and any per-unit warnings to stderr.
func printReport(report *driver.Report) {
	if report == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Segments: %d translated, %d skipped of %d\n",
		report.Translated, report.Skipped, report.Units)
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "Warning [%s #%d]: %s\n", w.Part, w.Unit, w.Message)
	}
}
