package search

import (
	"context"
	"testing"

	"github.com/jonwraymond/codesearch/index"
)

func testUnits() []index.Unit {
	return []index.Unit{
		{ID: "email.js", Content: "function validateEmail(email) { return /^[^@]+@[^@]+$/.test(email); }"},
		{ID: "db.js", Content: "async function connect() { retry(3); }"},
		{ID: "auth.js", Content: "function login(user, password) { return session.create(user); }"},
	}
}

func TestBM25Search_RanksMatchingUnitFirst(t *testing.T) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	results, err := s.Search(context.Background(), "validateEmail", 10, testUnits())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].UnitID != "email.js" {
		t.Fatalf("top result = %s, want email.js", results[0].UnitID)
	}
	if results[0].Score <= 0 || results[0].Score > 1 {
		t.Fatalf("normalized score = %v, want in (0,1]", results[0].Score)
	}
}

func TestBM25Search_TopScoreIsOne(t *testing.T) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	results, err := s.Search(context.Background(), "retry", 10, testUnits())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Score != 1 {
		t.Fatalf("top normalized score = %v, want 1", results[0].Score)
	}
}

func TestBM25Search_EmptyQueryReturnsFirstUnits(t *testing.T) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	results, err := s.Search(context.Background(), "", 2, testUnits())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// ID order: auth.js, db.js, email.js
	if results[0].UnitID != "auth.js" || results[1].UnitID != "db.js" {
		t.Fatalf("results = %v, want auth.js then db.js", results.IDs())
	}
}

func TestBM25Search_LimitZero(t *testing.T) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	results, err := s.Search(context.Background(), "retry", 0, testUnits())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("limit=0 returned %d results", len(results))
	}
}

func TestBM25Search_NoUnits(t *testing.T) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	results, err := s.Search(context.Background(), "retry", 10, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results from empty unit set", len(results))
	}
}

func TestBM25Search_CacheInvalidatedOnContentChange(t *testing.T) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	units := []index.Unit{{ID: "a.go", Content: "parse tokens"}}

	results, err := s.Search(context.Background(), "tokens", 10, units)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	// Same ID, new content: the fingerprint must force a rebuild.
	units[0].Content = "render templates"
	results, err = s.Search(context.Background(), "tokens", 10, units)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("stale cache: got %v for content that no longer matches", results.IDs())
	}
}

func TestBM25Search_CacheReusedForSameUnits(t *testing.T) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	units := testUnits()
	if _, err := s.Search(context.Background(), "retry", 10, units); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	cached := s.cached

	if _, err := s.Search(context.Background(), "login", 10, units); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if s.cached != cached {
		t.Fatal("bleve index rebuilt even though units did not change")
	}
}

func TestComputeFingerprint(t *testing.T) {
	a := []index.Unit{{ID: "x", Content: "one"}}
	b := []index.Unit{{ID: "x", Content: "one"}}
	c := []index.Unit{{ID: "x", Content: "two"}}
	d := []index.Unit{{ID: "y", Content: "one"}}

	if computeFingerprint(a) != computeFingerprint(b) {
		t.Error("identical units should fingerprint identically")
	}
	if computeFingerprint(a) == computeFingerprint(c) {
		t.Error("content change should change the fingerprint")
	}
	if computeFingerprint(a) == computeFingerprint(d) {
		t.Error("ID change should change the fingerprint")
	}
	if computeFingerprint(nil) == computeFingerprint(a) {
		t.Error("empty set should fingerprint differently from non-empty")
	}
}

func BenchmarkBM25Search_WarmCache(b *testing.B) {
	s := NewBM25Searcher(BM25Config{})
	defer s.Close()

	units := testUnits()
	if _, err := s.Search(context.Background(), "retry", 10, units); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Search(context.Background(), "retry", 10, units); err != nil {
			b.Fatal(err)
		}
	}
}
