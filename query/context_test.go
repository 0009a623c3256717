package query

import (
	"testing"
)

func TestExtractContext_WindowAroundBestLine(t *testing.T) {
	content := "package mail\n" +
		"\n" +
		"import \"regexp\"\n" +
		"\n" +
		"func validateEmail(email string) bool {\n" +
		"\treturn pattern.MatchString(email)\n" +
		"}\n"

	got := extractContext(content, "validate email", 2)

	if len(got.Lines) == 0 {
		t.Fatal("expected context lines")
	}

	// Best line is "func validateEmail..." (line 5, 1-based).
	found := false
	for _, line := range got.Lines {
		if line.Number == 5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("window %v does not include the best-matching line 5", got.Lines)
	}

	// Radius 2 around line 5 spans lines 3..7.
	if got.Lines[0].Number != 3 {
		t.Errorf("window starts at %d, want 3", got.Lines[0].Number)
	}
	if got.Lines[len(got.Lines)-1].Number != 7 {
		t.Errorf("window ends at %d, want 7", got.Lines[len(got.Lines)-1].Number)
	}
}

func TestExtractContext_ClampsAtFileStart(t *testing.T) {
	content := "func connect() error {\n\treturn dial()\n}"

	got := extractContext(content, "connect", 2)

	if got.Lines[0].Number != 1 {
		t.Fatalf("window starts at %d, want 1", got.Lines[0].Number)
	}
	if last := got.Lines[len(got.Lines)-1].Number; last != 3 {
		t.Fatalf("window ends at %d, want 3", last)
	}
}

func TestExtractContext_NoTokenOverlapFallsBackToTop(t *testing.T) {
	content := "alpha\nbeta\ngamma\ndelta\nepsilon"

	got := extractContext(content, "zeta", 1)

	if got.Lines[0].Number != 1 {
		t.Fatalf("fallback window starts at %d, want 1", got.Lines[0].Number)
	}
}

func TestExtractContext_EarliestLineWinsTies(t *testing.T) {
	content := "retry here\nsomething else\nretry here"

	got := extractContext(content, "retry", 0)

	if len(got.Lines) != 1 {
		t.Fatalf("radius 0 should yield one line, got %d", len(got.Lines))
	}
	if got.Lines[0].Number != 1 {
		t.Fatalf("best line = %d, want the earliest tie (1)", got.Lines[0].Number)
	}
}

func TestExtractContext_EmptyContent(t *testing.T) {
	got := extractContext("", "anything", 2)
	if len(got.Lines) != 0 {
		t.Fatalf("empty content produced %d lines", len(got.Lines))
	}
}

func TestExtractContext_LineNumbersAreOneBased(t *testing.T) {
	got := extractContext("only line", "only", 2)
	if len(got.Lines) != 1 || got.Lines[0].Number != 1 {
		t.Fatalf("got %v, want single line numbered 1", got.Lines)
	}
	if got.Lines[0].Content != "only line" {
		t.Fatalf("content = %q", got.Lines[0].Content)
	}
}
