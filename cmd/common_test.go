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
	"testing"

	"github.com/spf13/cobra"
)

func TestTranslationCommands_TargetFlagRequired(t *testing.T) {
	for _, c := range []*cobra.Command{translateCmd, textCmd} {
		flag := c.Flags().Lookup("target")
		if flag == nil {
			t.Fatalf("%s: target flag not registered", c.Name())
		}
		ann := flag.Annotations[cobra.BashCompOneRequiredFlag]
		if len(ann) == 0 || ann[0] != "true" {
			t.Errorf("%s: target flag is not marked required", c.Name())
		}
	}
}
