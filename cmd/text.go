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
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dverbin/doctran/internal/placeholder"
)

var (
	textInput     string
	textOutput    string
	protectMarkup bool
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Translate plain text",
	Long: `Translate plain text from a file or stdin. Large inputs are split into
chunks at sentence boundaries and translated sequentially, with a rolling
context window keeping terminology consistent across chunk boundaries.

Examples:
  doctran text -i letter.txt -o letter_de.txt -t de
  echo "Hello world." | doctran text -t fr`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		log := newLogger()

		var data []byte
		var err error
		if textInput == "" || textInput == "-" {
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		} else {
			data, err = os.ReadFile(textInput)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
		}

		cfg, err := buildTranslationConfig(ctx)
		if err != nil {
			return err
		}
		d, err := newTranslationDriver(log)
		if err != nil {
			return err
		}

		text := string(data)
		var captured []string
		if protectMarkup {
			text, captured = placeholder.Protect(text)
			cfg.PreserveMarkers = len(captured) > 0
		}

		translated, report, err := d.TranslateText(ctx, text, cfg)
		printReport(report)
		if err != nil {
			return err
		}

		if len(captured) > 0 {
			if missing := placeholder.Missing(translated, captured); len(missing) > 0 {
				fmt.Fprintf(os.Stderr, "Warning: %d protected markers lost in translation\n", len(missing))
			}
			translated = placeholder.Restore(translated, captured)
		}

		if textOutput == "" {
			fmt.Println(translated)
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(textOutput), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(textOutput, []byte(translated), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Translated text written to %s\n", textOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(textCmd)

	addTranslationFlags(textCmd)
	textCmd.Flags().StringVarP(&textInput, "input", "i", "", `Input file ("-" or empty reads stdin)`)
	textCmd.Flags().StringVarP(&textOutput, "output", "o", "", "Output file (empty writes stdout)")
	textCmd.Flags().BoolVar(&protectMarkup, "protect-markup", false, "Shield code blocks and HTML tags from translation")
}
