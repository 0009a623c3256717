package query

import (
	"strings"

	"github.com/jonwraymond/codesearch/embedder"
)

// extractContext returns the snippet window around the best-matching
// line of content. Heuristic: each line is scored by the number of
// distinct query tokens it contains (tokenized the same way as the
// embedder); the highest-scoring line wins, earliest line on ties, and
// the window is that line plus radius lines on each side, clamped to
// the file. Line numbers are 1-based. When no line shares a token with
// the query, the window starts at the top of the unit.
func extractContext(content, query string, radius int) Context {
	lines := strings.Split(content, "\n")
	if content == "" {
		return Context{Lines: []ContextLine{}}
	}

	best := bestLine(lines, embedder.TokenSet(query))

	start := best - radius
	if start < 0 {
		start = 0
	}
	end := best + radius
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	window := make([]ContextLine, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, ContextLine{
			Number:  i + 1,
			Content: lines[i],
		})
	}
	return Context{Lines: window}
}

func bestLine(lines []string, queryTokens map[string]struct{}) int {
	best := 0
	bestScore := 0

	for i, line := range lines {
		score := 0
		for token := range embedder.TokenSet(line) {
			if _, ok := queryTokens[token]; ok {
				score++
			}
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}
