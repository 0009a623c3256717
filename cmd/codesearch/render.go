package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jonwraymond/codesearch/query"
)

// renderResults prints a summary table followed by context snippets.
func renderResults(w io.Writer, resp query.Response) {
	if resp.ResultCount == 0 {
		fmt.Fprintf(w, "no results for %q\n", resp.Query)
		return
	}

	highColor := color.New(color.FgHiGreen).SprintFunc()
	mediumColor := color.New(color.FgHiYellow).SprintFunc()
	lowColor := color.New(color.FgHiBlack).SprintFunc()

	paint := func(relevance string) string {
		switch relevance {
		case "high":
			return highColor(relevance)
		case "medium":
			return mediumColor(relevance)
		default:
			return lowColor(relevance)
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header("File", "Similarity", "Relevance")
	for _, result := range resp.Results {
		table.Append([]string{
			result.FilePath,
			fmt.Sprintf("%.3f", result.Similarity),
			paint(result.Relevance),
		})
	}
	table.Render()

	for _, result := range resp.Results {
		fmt.Fprintf(w, "\n%s\n", result.FilePath)
		for _, line := range result.Context.Lines {
			fmt.Fprintf(w, "  %4d | %s\n", line.Number, line.Content)
		}
	}
}
