package placeholder_test

import (
	"strings"
	"testing"

	"github.com/dverbin/doctran/internal/placeholder"
)

func TestProtect_NoMarkup(t *testing.T) {
	text := "Hello, world!"
	got, captured := placeholder.Protect(text)
	if got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
	if len(captured) != 0 {
		t.Errorf("expected 0 captures, got %d", len(captured))
	}
}

func TestProtect_HTMLTags(t *testing.T) {
	text := "<p>Hello <b>world</b></p>"
	got, captured := placeholder.Protect(text)

	if len(captured) != 4 {
		t.Fatalf("expected 4 captures (<p>, <b>, </b>, </p>), got %d: %v", len(captured), captured)
	}
	for _, tag := range []string{"<p>", "<b>", "</b>", "</p>"} {
		if strings.Contains(got, tag) {
			t.Errorf("expected tag %q to be replaced, still present in %q", tag, got)
		}
	}
}

func TestProtect_FencedCodeBeforeInline(t *testing.T) {
	text := "Run `go test` after editing:\n```go\nfmt.Println(\"hi\")\n```\nDone."
	got, captured := placeholder.Protect(text)

	if len(captured) != 2 {
		t.Fatalf("expected 2 captures, got %d: %v", len(captured), captured)
	}
	if strings.Contains(got, "```") || strings.Contains(got, "`go test`") {
		t.Errorf("markup still present in %q", got)
	}
	// The fenced block is captured first even though it appears later.
	if !strings.Contains(captured[0], "fmt.Println") {
		t.Errorf("expected fenced block as first capture, got %q", captured[0])
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	text := "Use `fmt.Println` inside <b>main</b> to print."
	protected, captured := placeholder.Protect(text)
	if got := placeholder.Restore(protected, captured); got != text {
		t.Errorf("round trip mismatch:\n  got  %q\n  want %q", got, text)
	}
}

func TestRestore_UnknownIndexLeftAlone(t *testing.T) {
	got := placeholder.Restore("Hello [PH7] world", []string{"<b>"})
	if got != "Hello [PH7] world" {
		t.Errorf("unknown marker must be left as-is, got %q", got)
	}
}

func TestMissing(t *testing.T) {
	_, captured := placeholder.Protect("<p>one</p>")
	translated := "[PH0]eins" // model dropped the closing tag marker
	missing := placeholder.Missing(translated, captured)
	if len(missing) != 1 || missing[0] != 1 {
		t.Errorf("expected missing index [1], got %v", missing)
	}
}
