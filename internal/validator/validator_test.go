package validator_test

import (
	"testing"

	"github.com/dverbin/doctran/internal/validator"
)

func TestIsValid(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name       string
		text       string
		targetLang string
		want       bool
	}{
		{"matching language", "Dies ist ein vollständiger deutscher Satz mit genügend Wörtern.", "de", true},
		{"wrong language", "This is clearly a complete English sentence with plenty of words.", "de", false},
		{"short text passes unchecked", "Hallo.", "de", true},
		{"no target language", "anything at all", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.IsValid(tt.text, tt.targetLang)
			if got != tt.want {
				t.Errorf("IsValid(%q, %q) = %v (err=%v), want %v", tt.text, tt.targetLang, got, err, tt.want)
			}
			if !got && err == nil {
				t.Error("invalid result must carry an explanatory error")
			}
		})
	}
}

func TestIsValid_EmptyTranslation(t *testing.T) {
	v := validator.New()
	ok, err := v.IsValid("   ", "de")
	if ok || err == nil {
		t.Error("empty translation must be invalid with an error")
	}
}
