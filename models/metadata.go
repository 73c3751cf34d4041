package models

// PageMetadata describes the page an extraction was taken from.
// Derived once per extraction call; optional fields stay empty when the page
// does not declare them.
type PageMetadata struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	SiteName    string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Language enrichment, filled in by callers that run analytics.
	Language           string  `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
}
