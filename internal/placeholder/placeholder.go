// Package placeholder shields structured content in plain-text input from
// the translation model. Fenced code blocks, inline code spans, and
// HTML/XML tags are swapped for numbered markers ([PH0], [PH1], …) before
// translation and swapped back afterwards, so the model never gets the
// chance to translate or mangle them.
//
// Document packages never need this: their markup lives outside the text
// runs. It exists for the free-form text path, where code and tags share
// the line with prose.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// fenced code blocks: ```...``` (non-greedy, may span lines)
	reFencedCode = regexp.MustCompile("(?s)```.*?```")

	// inline code spans: `...`
	reInlineCode = regexp.MustCompile("`[^`]+`")

	// HTML/XML tags: opening, closing, and self-closing
	reHTMLTag = regexp.MustCompile(`<[^>]+>`)

	// placeholder reference in translated text
	rePlaceholder = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces structured markup with numbered markers in the order
// it appears. It returns the protected text and the captured originals
// for Restore. Fenced blocks are captured first so their contents never
// match the narrower patterns.
func Protect(text string) (string, []string) {
	var captured []string

	replace := func(match string) string {
		marker := fmt.Sprintf("[PH%d]", len(captured))
		captured = append(captured, match)
		return marker
	}

	text = reFencedCode.ReplaceAllStringFunc(text, replace)
	text = reInlineCode.ReplaceAllStringFunc(text, replace)
	text = reHTMLTag.ReplaceAllStringFunc(text, replace)

	return text, captured
}

// Restore substitutes [PHn] markers back with the originals captured by
// Protect. Unknown indices leave the marker as-is; markers the model
// dropped simply stay absent (see Missing).
func Restore(text string, captured []string) string {
	return rePlaceholder.ReplaceAllStringFunc(text, func(match string) string {
		sub := rePlaceholder.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(captured) {
			return match
		}
		return captured[idx]
	})
}

// InstructionHint is appended to the model instructions whenever Protect
// was applied, so the markers survive the round trip.
func InstructionHint() string {
	return "Preserve all [PHn] markers exactly as they appear. Do not translate, move, or remove them."
}

// Missing reports the indices of captured markers that no longer occur in
// the translated text.
func Missing(text string, captured []string) []int {
	var missing []int
	for i := range captured {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			missing = append(missing, i)
		}
	}
	return missing
}
