// Package chunker splits large texts into translatable chunks while
// preserving sentence integrity. Chunks are measured in unicode code
// points, not tokens: character counts are language-agnostic and keep the
// segmenter independent of any particular model's tokenizer.
//
// It also extracts a bounded trailing context window from previously
// translated output, used to keep terminology consistent across chunk
// boundaries.
package chunker

import "strings"

// UnitDelimiter separates merged segments when a whole paragraph is
// translated in one call. U+001F (unit separator) never occurs in
// document text, so segment boundaries survive the round trip.
const UnitDelimiter = "\x1f"

// Split divides text into chunks of at most maxLength runes, cutting at
// the last sentence-terminating period found inside the overlap window.
//
// The search window extends overlap runes past the proposed end and the
// scan runs backwards, favouring the longest chunk that still ends on a
// sentence boundary. When no period falls inside the window the cut is a
// hard one at end+overlap. The overlap region is only used to locate the
// boundary; emitted chunks are contiguous, non-overlapping slices whose
// concatenation reproduces text exactly.
//
// Text shorter than maxLength yields a single chunk equal to text.
func Split(text string, maxLength, overlap int) []string {
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + maxLength
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		cut := lastPeriod(runes, start, end, overlap)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut
	}
	return chunks
}

// lastPeriod returns the rune index just past the last '.' inside the
// overlap window around end, or the window's far edge when the window
// contains no period.
func lastPeriod(runes []rune, start, end, overlap int) int {
	windowStart := end - overlap
	if windowStart < start {
		windowStart = start
	}
	windowEnd := end + overlap
	if windowEnd > len(runes) {
		windowEnd = len(runes)
	}
	for i := windowEnd - 1; i >= windowStart; i-- {
		if runes[i] == '.' {
			return i + 1
		}
	}
	return windowEnd
}

// ContextTail returns a trailing excerpt of text no longer than max runes,
// for use as the rolling context passed to the next translation call.
//
// When the excerpt would begin mid-sentence and the truncation window
// contains a sentence boundary, the excerpt starts just after the first
// period inside the window instead. The result never exceeds max runes.
func ContextTail(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	window := runes[len(runes)-max:]
	for i, r := range window {
		if r == '.' && i+1 < len(window) {
			return strings.TrimLeft(string(window[i+1:]), " ")
		}
	}
	return string(window)
}

// JoinUnits concatenates segment texts with UnitDelimiter so they can be
// translated in a single call and split back onto their segments.
func JoinUnits(units []string) string {
	return strings.Join(units, UnitDelimiter)
}

// SplitUnits divides a delimiter-joined translation back into want parts.
// The boolean reports whether the delimiter count matched; on a mismatch
// the result is repaired by truncating extra parts or padding with empty
// strings so the caller always receives exactly want elements.
func SplitUnits(joined string, want int) ([]string, bool) {
	parts := strings.Split(joined, UnitDelimiter)
	if len(parts) == want {
		return parts, true
	}
	if len(parts) > want {
		return parts[:want], false
	}
	for len(parts) < want {
		parts = append(parts, "")
	}
	return parts, false
}
