package render

import (
	"strings"
	"testing"
)

func TestText_PlainInputPassesThrough(t *testing.T) {
	got := Text("Eight loaves,   baked yesterday.")
	if got != "Eight loaves, baked yesterday." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestText_StripsMarkup(t *testing.T) {
	got := Text("<p>Fresh <strong>sourdough</strong> bread</p><p>Collect before 6pm.</p>")
	want := "Fresh sourdough bread\n\nCollect before 6pm."
	if got != want {
		t.Fatalf("unexpected text: %q, want %q", got, want)
	}
}

func TestText_DropsScriptAndStyle(t *testing.T) {
	got := Text(`<style>p{color:red}</style><p>Visible</p><script>alert(1)</script>`)
	if got != "Visible" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestText_Empty(t *testing.T) {
	if got := Text("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestLines_WrapsToWidth(t *testing.T) {
	lines := Lines("one two three four five six seven", 10)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	for _, line := range lines {
		if len(line) > 10 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if strings.Join(strings.Fields(strings.Join(lines, " ")), " ") != "one two three four five six seven" {
		t.Fatalf("wrapping lost words: %v", lines)
	}
}

func TestLines_LongWordIsHardSplit(t *testing.T) {
	lines := Lines("superduperextremelylongword", 8)
	for _, line := range lines {
		if len(line) > 8 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}
