// Package validator checks that a translated unit is actually written in
// the requested target language. Failures are reported as warnings, never
// as pipeline errors — detection on short snippets is too unreliable to
// reject output over.
package validator

import (
	"fmt"
	"strings"

	"github.com/dverbin/doctran/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt
// detection. Shorter texts produce unreliable results and pass unchecked.
const minValidationLength = 20

// Validator verifies the language of translated text.
// The underlying detector is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

func New() *Validator {
	return &Validator{det: detector.New()}
}

// NewWithDetector shares an already built detector, avoiding a second
// model load when the driver also auto-detects source languages.
func NewWithDetector(det *detector.Detector) *Validator {
	return &Validator{det: det}
}

// IsValid reports whether translatedText appears to be written in
// targetLang. Short texts and texts whose language cannot be determined
// pass without error. When the detected language differs from targetLang
// the returned error names both codes.
func (v *Validator) IsValid(translatedText, targetLang string) (bool, error) {
	if targetLang == "" {
		return true, nil
	}

	text := strings.TrimSpace(translatedText)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}

	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return true, nil
	}

	if !strings.EqualFold(detected, targetLang) {
		return false, fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}

	return true, nil
}
