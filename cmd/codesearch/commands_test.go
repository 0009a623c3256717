package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/jonwraymond/codesearch/embedder"
	"github.com/jonwraymond/codesearch/index"
	"github.com/jonwraymond/codesearch/query"
)

// writeTestSnapshot builds a one-unit index and saves it to a temp snapshot.
func writeTestSnapshot(t *testing.T) string {
	t.Helper()

	emb := embedder.NewHashEmbedder(embedder.DefaultDimension)
	idx, err := index.NewInMemoryIndex(index.Options{Embedder: emb})
	if err != nil {
		t.Fatalf("NewInMemoryIndex failed: %v", err)
	}
	content := "function validateEmail(address) {\n  return pattern.test(address);\n}"
	if err := idx.IndexUnit(context.Background(), "src/email.js", content); err != nil {
		t.Fatalf("IndexUnit failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "codesearch.db")
	if err := idx.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	return path
}

func runSearchCmd(t *testing.T, args ...string) error {
	t.Helper()

	cmd := newRootCmd(zap.NewNop())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestSearchCmd_RejectsExplicitNegativeLimit(t *testing.T) {
	snap := writeTestSnapshot(t)

	err := runSearchCmd(t, "search", "email validation", "--db", snap, "--limit=-5")
	if !errors.Is(err, query.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestSearchCmd_RejectsExplicitInvalidThreshold(t *testing.T) {
	snap := writeTestSnapshot(t)

	err := runSearchCmd(t, "search", "email validation", "--db", snap, "--threshold=1.5")
	if !errors.Is(err, query.ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
}

func TestSearchCmd_OmittedFlagsUseConfigDefaults(t *testing.T) {
	snap := writeTestSnapshot(t)

	if err := runSearchCmd(t, "search", "email validation", "--db", snap, "--json"); err != nil {
		t.Fatalf("search with omitted flags failed: %v", err)
	}
}

func TestSearchCmd_ExplicitZeroLimitIsValid(t *testing.T) {
	snap := writeTestSnapshot(t)

	if err := runSearchCmd(t, "search", "email validation", "--db", snap, "--limit=0", "--json"); err != nil {
		t.Fatalf("search with limit 0 failed: %v", err)
	}
}
