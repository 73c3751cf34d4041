package models

// ExtractedContent is the result of one extraction pass over a page.
// MainContent is the deterministic combination of Sections sorted by
// importance (stable, descending); WordCount counts the whitespace-delimited
// tokens of MainContent, not of the raw page text.
type ExtractedContent struct {
	Metadata    PageMetadata     `json:"metadata" yaml:"metadata"`
	MainContent string           `json:"main_content" yaml:"main_content"`
	Sections    []ContentSection `json:"sections" yaml:"sections"`
	WordCount   int              `json:"word_count" yaml:"word_count"`
}
