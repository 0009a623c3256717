package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonwraymond/codesearch/query"
)

func TestRenderResults_Table(t *testing.T) {
	resp := query.Response{
		Query:       "email validation",
		ResultCount: 2,
		Results: []query.Result{
			{
				FilePath:   "src/email.js",
				Similarity: 0.912,
				Relevance:  "high",
				Context: query.Context{Lines: []query.ContextLine{
					{Number: 3, Content: "function validateEmail(address) {"},
				}},
			},
			{
				FilePath:   "src/db.js",
				Similarity: 0.215,
				Relevance:  "low",
				Context:    query.Context{Lines: []query.ContextLine{}},
			},
		},
	}

	var buf bytes.Buffer
	renderResults(&buf, resp)
	out := buf.String()

	for _, want := range []string{
		"File", "Similarity", "Relevance",
		"src/email.js", "0.912", "high",
		"src/db.js", "0.215", "low",
		"function validateEmail(address) {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderResults(&buf, query.Response{Query: "nothing here", ResultCount: 0})

	if !strings.Contains(buf.String(), `no results for "nothing here"`) {
		t.Errorf("missing no-results message, got:\n%s", buf.String())
	}
}
