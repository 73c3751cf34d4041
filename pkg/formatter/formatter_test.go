package formatter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dtnitsch/pagectx/models"
)

func TestCombine_StableSortByImportance(t *testing.T) {
	sections := []models.ContentSection{
		{Content: "low", Importance: 5},
		{Content: "first-high", Importance: 9},
		{Content: "mid", Importance: 7},
		{Content: "second-high", Importance: 9},
	}

	got := Combine(sections)
	want := "first-high\n\nsecond-high\n\nmid\n\nlow"
	if got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}

	// Input order must be preserved.
	if sections[0].Content != "low" {
		t.Error("Combine() mutated its input")
	}
}

func TestCombine_HeadingFormat(t *testing.T) {
	sections := []models.ContentSection{
		{Heading: "Title", Content: "Body text.", Importance: 10},
	}
	got := Combine(sections)
	want := "## Title ##\n\nBody text."
	if got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
}

func TestCombine_Deterministic(t *testing.T) {
	sections := []models.ContentSection{
		{Heading: "A", Content: "one", Importance: 8},
		{Content: "two", Importance: 8},
		{Heading: "B", Content: "three", Importance: 6},
	}
	first := Combine(sections)
	second := Combine(sections)
	if first != second {
		t.Errorf("Combine() not deterministic: %q vs %q", first, second)
	}
}

func TestCombine_Empty(t *testing.T) {
	if got := Combine(nil); got != "" {
		t.Errorf("Combine(nil) = %q, want empty", got)
	}
}

func TestFormatForPrompt_Preamble(t *testing.T) {
	content := &models.ExtractedContent{
		Metadata: models.PageMetadata{
			Title:       "Example Article",
			URL:         "https://example.com/a",
			SiteName:    "Example",
			Description: "About things.",
		},
		MainContent: "## Title ##\n\nBody text.",
		WordCount:   5,
	}

	got := FormatForPrompt(content)
	want := "Title: Example Article\n" +
		"URL: https://example.com/a\n" +
		"Site: Example\n" +
		"Description: About things.\n" +
		"\nPAGE CONTENT (5 words):\n\n" +
		"## Title ##\n\nBody text."
	if got != want {
		t.Errorf("FormatForPrompt() = %q, want %q", got, want)
	}
}

func TestFormatForPrompt_OptionalFieldsOmitted(t *testing.T) {
	content := &models.ExtractedContent{
		Metadata:    models.PageMetadata{Title: "T", URL: "https://example.com"},
		MainContent: "text",
		WordCount:   1,
	}

	got := FormatForPrompt(content)
	if strings.Contains(got, "Site:") || strings.Contains(got, "Description:") {
		t.Errorf("FormatForPrompt() = %q, optional lines should be omitted", got)
	}
}

func TestFormatForPrompt_Truncation(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 800)
	content := &models.ExtractedContent{
		Metadata:    models.PageMetadata{Title: "Long", URL: "https://example.com/long"},
		MainContent: long,
		WordCount:   CountWords(long),
	}

	got := FormatForPrompt(content)
	marker := fmt.Sprintf("\n\n[Content truncated due to length. %d total words on page]", content.WordCount)

	if !strings.HasSuffix(got, marker) {
		t.Fatalf("truncated output must end with the exact marker, got tail %q", got[len(got)-80:])
	}
	if gotLen := len([]rune(got)); gotLen != MaxPromptChars+len([]rune(marker)) {
		t.Errorf("output length = %d, want exactly %d + marker %d", gotLen, MaxPromptChars, len([]rune(marker)))
	}
	if !strings.HasPrefix(got, "Title: Long\nURL: https://example.com/long\n") {
		t.Error("metadata preamble must survive truncation intact")
	}
}

func TestFormatForPrompt_NoTruncationUnderBudget(t *testing.T) {
	content := &models.ExtractedContent{
		Metadata:    models.PageMetadata{Title: "Short", URL: "https://example.com"},
		MainContent: "small body",
		WordCount:   2,
	}
	got := FormatForPrompt(content)
	if strings.Contains(got, "[Content truncated") {
		t.Errorf("FormatForPrompt() = %q, should not truncate under budget", got)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "whitespace only", in: "  \n\t ", want: 0},
		{name: "simple", in: "Body text.", want: 2},
		{name: "mixed whitespace", in: "a\tb\nc  d", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.in); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
