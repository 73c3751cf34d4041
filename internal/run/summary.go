package run

import (
	"math"
	"strings"
	"time"

	"github.com/dtnitsch/pagectx/pkg/analytics"
)

// estimateTokens approximates LLM tokens from a word count.
func estimateTokens(wordCount int) int {
	return int(math.Round(float64(wordCount) / 2.5))
}

// BuildSummary converts a worker result into its summary row.
func BuildSummary(r Result) ResultSummary {
	summary := ResultSummary{
		URL:        r.URL,
		PromptPath: r.PromptPath,
		JSONPath:   r.JSONPath,
	}

	if r.Error != nil {
		summary.Status = "failed"
		summary.Error = r.Error.Error()
		summary.ErrorType = r.ErrorType
		return summary
	}

	summary.Status = "success"
	if r.Content != nil {
		summary.Title = r.Content.Metadata.Title
		summary.Language = r.Content.Metadata.Language
		summary.WordCount = r.Content.WordCount
		summary.SectionCount = len(r.Content.Sections)
		summary.EstimatedTokens = estimateTokens(r.Content.WordCount)
	}
	return summary
}

// BuildRunOutput aggregates all worker results into the final run report,
// including keywords computed over the combined extracted text.
func BuildRunOutput(results []Result, elapsed time.Duration) *RunOutput {
	a := &analytics.Analytics{}
	output := &RunOutput{
		Results: make([]ResultSummary, 0, len(results)),
	}
	output.Stats.TotalURLs = len(results)
	output.Stats.TotalTimeSeconds = elapsed.Seconds()

	var combined strings.Builder
	for _, r := range results {
		output.Results = append(output.Results, BuildSummary(r))
		if r.Error != nil {
			output.Stats.Failed++
			continue
		}
		output.Stats.Successful++
		if r.Content != nil {
			output.Stats.TotalWords += r.Content.WordCount
			combined.WriteString(r.Content.MainContent)
			combined.WriteString("\n")
		}
	}

	output.Stats.TopKeywords = a.TopKeywords(combined.String(), 25)

	if output.Stats.Failed == 0 {
		output.Status = "success"
	} else if output.Stats.Successful > 0 {
		output.Status = "partial_failure"
	} else {
		output.Status = "failure"
	}
	return output
}
