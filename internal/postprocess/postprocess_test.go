package postprocess_test

import (
	"testing"

	"github.com/dverbin/doctran/internal/postprocess"
)

func TestExtractWrapped(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"well formed", "<translated_text>Hallo Welt.</translated_text>", "Hallo Welt."},
		{"prose around wrapper", "Sure: <translated_text>Hallo.</translated_text> Done!", "Hallo."},
		{"missing closing tag", "<translated_text>Hallo Welt.", "Hallo Welt."},
		{"missing opening tag", "Hallo Welt.</translated_text>", "Hallo Welt."},
		{"no tags at all", "Hallo Welt.", "Hallo Welt."},
		{"empty content", "<translated_text></translated_text>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := postprocess.ExtractWrapped(tt.in, "translated_text"); got != tt.want {
				t.Errorf("ExtractWrapped(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSwissSpelling(t *testing.T) {
	if got := postprocess.SwissSpelling("Die Straße ist groß."); got != "Die Strasse ist gross." {
		t.Errorf("got %q", got)
	}
	if got := postprocess.SwissSpelling("no eszett here"); got != "no eszett here" {
		t.Errorf("text without eszett must pass through, got %q", got)
	}
}

func TestClean_ThinkingBlocks(t *testing.T) {
	in := "<thinking>let me consider</thinking>Hallo Welt."
	if got := postprocess.Clean(in); got != "Hallo Welt." {
		t.Errorf("got %q", got)
	}
}

func TestClean_TruncatedThinkingBlock(t *testing.T) {
	in := "Hallo Welt.<think>unterminated"
	if got := postprocess.Clean(in); got != "Hallo Welt." {
		t.Errorf("got %q", got)
	}
}

func TestClean_InstructionEcho(t *testing.T) {
	in := "Here is the translation: Hallo Welt."
	if got := postprocess.Clean(in); got != "Hallo Welt." {
		t.Errorf("got %q", got)
	}
}

func TestClean_QuoteWrapping(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"Hallo Welt."`, "Hallo Welt."},
		{"«Hallo Welt.»", "Hallo Welt."},
		{"Hallo \"quoted\" Welt.", "Hallo \"quoted\" Welt."},
	}
	for _, tt := range tests {
		if got := postprocess.Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
