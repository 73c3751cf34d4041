// Package formatter combines scored sections into deterministic,
// prompt-ready text.
package formatter

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/dtnitsch/pagectx/models"
)

// MaxPromptChars caps the formatted prompt length, counted in characters.
const MaxPromptChars = 8000

const truncationNote = "\n\n[Content truncated due to length. %d total words on page]"

// Combine stable-sorts sections by importance descending and concatenates
// them: an optional "## heading ##" line per section, the section content,
// and a blank line between sections. Sections with equal importance keep
// their original order, so the output is a deterministic function of the
// input.
func Combine(sections []models.ContentSection) string {
	sorted := make([]models.ContentSection, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance > sorted[j].Importance
	})

	var b strings.Builder
	for _, section := range sorted {
		if section.Heading != "" {
			b.WriteString("## ")
			b.WriteString(section.Heading)
			b.WriteString(" ##\n\n")
		}
		b.WriteString(section.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// FormatForPrompt renders extracted content as the prompt context block: a
// metadata preamble, a word-count banner, and the combined main content.
// Output longer than MaxPromptChars is cut to exactly that many characters
// and tagged with a truncation note; the cut is character-based, not
// word-boundary-aware.
func FormatForPrompt(content *models.ExtractedContent) string {
	var b strings.Builder
	meta := content.Metadata
	fmt.Fprintf(&b, "Title: %s\n", meta.Title)
	fmt.Fprintf(&b, "URL: %s\n", meta.URL)
	if meta.SiteName != "" {
		fmt.Fprintf(&b, "Site: %s\n", meta.SiteName)
	}
	if meta.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", meta.Description)
	}
	fmt.Fprintf(&b, "\nPAGE CONTENT (%d words):\n\n", content.WordCount)
	b.WriteString(content.MainContent)

	out := b.String()
	if runes := []rune(out); len(runes) > MaxPromptChars {
		out = string(runes[:MaxPromptChars]) + fmt.Sprintf(truncationNote, content.WordCount)
	}
	return out
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
