// Package postprocess normalizes the raw text returned by an LLM-backed
// translation service before it is written back into the document:
// wrapper-tag extraction, artifact removal, and orthographic substitution.
package postprocess

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractWrapped returns the content between <tag> and </tag> in text.
// Models occasionally emit prose around the wrapper, or omit one of the
// tags when cut off; extraction degrades gracefully: a missing opening tag
// anchors at the start of text, a missing closing tag runs to the end.
func ExtractWrapped(text, tag string) string {
	open := fmt.Sprintf("<%s>", tag)
	close := fmt.Sprintf("</%s>", tag)

	start := 0
	if idx := strings.Index(text, open); idx >= 0 {
		start = idx + len(open)
	}
	end := len(text)
	if idx := strings.Index(text[start:], close); idx >= 0 {
		end = start + idx
	}
	return text[start:end]
}

// SwissSpelling replaces the eszett with its double-s digraph, per Swiss
// Standard German orthography. Applied unconditionally to every result.
func SwissSpelling(text string) string {
	return strings.ReplaceAll(text, "ß", "ss")
}

// Clean removes common LLM artifacts from text and returns the trimmed
// result: thinking/reasoning blocks, instruction echoes, quote wrapping.
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeInstructionEchoes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag is
// missing (the model was cut off mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// echoPatterns match introductory phrases that LLMs sometimes prepend even
// when instructed not to. Each pattern is anchored to the start and
// requires a colon to reduce false positives on legitimate content.
var echoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:translated )?(?:translation|text)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text)\s*:`),
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:translated )?(?:translation|text)\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// removeQuoteWrapping strips a matching pair of outer quotes when the
// entire text is wrapped in them. Supported pairs: "…" '…' «…» “…” ‘…’
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
