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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dverbin/doctran/internal/driver"
)

var (
	translateOutput  string
	translateWorkers int
)

var translateCmd = &cobra.Command{
	Use:   "translate <document.docx> [more.docx ...]",
	Short: "Translate Word documents, preserving all formatting",
	Long: `Translate one or more Word documents. The document body, headers and
footers are translated segment by segment; fonts, styles, images, tables
and every other part of the document survive unchanged.

With a single input, --output names the output file (default:
"<input>_<target>.docx" next to the input). With multiple inputs,
--output names a directory and documents are translated in parallel.

Examples:
  doctran translate report.docx -t de
  doctran translate report.docx -t de -o report_german.docx
  doctran translate a.docx b.docx c.docx -t fr -o translated/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		log := newLogger()

		cfg, err := buildTranslationConfig(ctx)
		if err != nil {
			return err
		}
		d, err := newTranslationDriver(log)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			output := translateOutput
			if output == "" {
				output = derivedOutputPath(args[0], targetLang)
			}
			if sameFile(args[0], output) {
				return fmt.Errorf("input file and output file cannot be the same")
			}

			report, err := d.TranslatePackage(ctx, args[0], output, cfg)
			printReport(report)
			if err != nil {
				return err
			}
			fmt.Printf("Translated %s -> %s\n", args[0], output)
			return nil
		}

		jobs := make([]driver.DocumentJob, len(args))
		for i, input := range args {
			output := derivedOutputPath(input, targetLang)
			if translateOutput != "" {
				output = filepath.Join(translateOutput, filepath.Base(output))
			}
			if sameFile(input, output) {
				return fmt.Errorf("input file and output file cannot be the same: %s", input)
			}
			jobs[i] = driver.DocumentJob{Input: input, Output: output}
		}
		if translateOutput != "" {
			if err := os.MkdirAll(translateOutput, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		results := d.TranslateBatch(ctx, jobs, cfg, translateWorkers)

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "Failed %s: %v\n", res.Job.Input, res.Err)
				continue
			}
			printReport(res.Report)
			fmt.Printf("Translated %s -> %s\n", res.Job.Input, res.Job.Output)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(results))
		}
		return nil
	},
}

// derivedOutputPath appends the target language to the input's stem:
// report.docx -> report_de.docx.
func derivedOutputPath(input, target string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	return fmt.Sprintf("%s_%s%s", stem, target, ext)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

func init() {
	rootCmd.AddCommand(translateCmd)

	addTranslationFlags(translateCmd)
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "Output file (single input) or directory (multiple inputs)")
	translateCmd.Flags().IntVar(&translateWorkers, "workers", 2, "Parallel workers for multiple documents")
}
