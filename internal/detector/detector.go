// Package detector identifies the language of a piece of text. It backs
// source-language auto-detection ("auto" in the config) and the optional
// post-translation target-language check.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

// Detector wraps a lingua language detector. Building the underlying
// models is expensive; construct once and reuse.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

// Detect returns the detected language. ok is false when the text is
// empty or too ambiguous to classify; the pipeline then proceeds with an
// empty source language and lets the translation service infer it.
func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lowercase ISO 639-1 code of the detected language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return toISO(lang), true
}

func toISO(lang lingua.Language) string {
	code := lang.IsoCode639_1().String()
	// lingua reports codes uppercase; the rest of the pipeline speaks
	// lowercase ISO 639-1.
	b := []byte(code)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
