package embedder

import (
	"context"
	"math"
	"testing"
)

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func TestEmbed_Deterministic(t *testing.T) {
	e := NewHashEmbedder(128)

	inputs := []string{
		"",
		"retry logic with backoff",
		"function validateEmail(email) { return /^[^@]+@[^@]+$/.test(email); }",
		"日本語のコメント and mixed ascii",
	}

	for _, input := range inputs {
		first, err := e.Embed(context.Background(), input)
		if err != nil {
			t.Fatalf("Embed(%q) failed: %v", input, err)
		}
		second, err := e.Embed(context.Background(), input)
		if err != nil {
			t.Fatalf("Embed(%q) failed: %v", input, err)
		}

		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("Embed(%q) not deterministic at dim %d: %v != %v", input, i, first[i], second[i])
			}
		}
	}
}

func TestEmbed_FixedDimension(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		want int
	}{
		{"default", 0, DefaultDimension},
		{"negative falls back", -5, DefaultDimension},
		{"explicit", 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHashEmbedder(tt.dim)
			if e.Dimension() != tt.want {
				t.Fatalf("Dimension() = %d, want %d", e.Dimension(), tt.want)
			}

			for _, input := range []string{"", "a", "some longer input with many tokens"} {
				vec, err := e.Embed(context.Background(), input)
				if err != nil {
					t.Fatalf("Embed(%q) failed: %v", input, err)
				}
				if len(vec) != tt.want {
					t.Errorf("len(Embed(%q)) = %d, want %d", input, len(vec), tt.want)
				}
			}
		})
	}
}

func TestEmbed_EmptyStringIsZeroVector(t *testing.T) {
	e := NewHashEmbedder(32)

	vec, err := e.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("Embed(\"\") failed: %v", err)
	}

	for i, v := range vec {
		if v != 0 {
			t.Fatalf("Embed(\"\")[%d] = %v, want 0", i, v)
		}
	}
}

func TestEmbed_UnitLength(t *testing.T) {
	e := NewHashEmbedder(128)

	vec, err := e.Embed(context.Background(), "retry logic with backoff and jitter")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if got := dot(vec, vec); math.Abs(got-1.0) > 1e-5 {
		t.Fatalf("||v||^2 = %v, want 1.0", got)
	}
}

func TestEmbed_SelfSimilarity(t *testing.T) {
	e := NewHashEmbedder(128)

	vec, err := e.Embed(context.Background(), "semantic code search engine")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	// Both vectors are unit length, so cosine is the plain dot product.
	if got := dot(vec, vec); math.Abs(got-1.0) > 1e-5 {
		t.Fatalf("self-similarity = %v, want ~1.0", got)
	}
}

func TestEmbed_VocabularyOverlapRanksHigher(t *testing.T) {
	e := NewHashEmbedder(128)

	a, _ := e.Embed(context.Background(), "retry logic with backoff")
	b, _ := e.Embed(context.Background(), "retry logic with backoff and jitter")
	c, _ := e.Embed(context.Background(), "unrelated database schema migration")

	simAB := dot(a, b)
	simAC := dot(a, c)

	if simAB <= simAC {
		t.Fatalf("overlapping text should rank higher: sim(a,b)=%v, sim(a,c)=%v", simAB, simAC)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t\n ", nil},
		{"simple", "retry logic", []string{"retry", "logic"}},
		{"lowercased", "Retry LOGIC", []string{"retry", "logic"}},
		{"punctuation delimits", "validateEmail(email)", []string{"validateemail", "email"}},
		{"digits kept", "sha256 v2", []string{"sha256", "v2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Tokenize(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenSet_Distinct(t *testing.T) {
	set := TokenSet("retry retry retry logic")
	if len(set) != 2 {
		t.Fatalf("TokenSet returned %d tokens, want 2", len(set))
	}
	if _, ok := set["retry"]; !ok {
		t.Error("missing token retry")
	}
	if _, ok := set["logic"]; !ok {
		t.Error("missing token logic")
	}
}

func BenchmarkEmbed(b *testing.B) {
	e := NewHashEmbedder(128)
	text := "func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]Result, error)"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Embed(context.Background(), text); err != nil {
			b.Fatal(err)
		}
	}
}
