package run

import (
	"github.com/dtnitsch/pagectx/models"
)

type Job struct {
	URL string
}

// Result holds the outcome of a processed job.
type Result struct {
	URL        string
	PromptPath string
	JSONPath   string
	Content    *models.ExtractedContent
	Prompt     string
	Error      error
	ErrorType  string
}

// ResultSummary holds summary data for a single processed URL.
type ResultSummary struct {
	URL             string `yaml:"url"`
	Status          string `yaml:"status"`
	Error           string `yaml:"error,omitempty"`
	ErrorType       string `yaml:"error_type,omitempty"`
	PromptPath      string `yaml:"prompt_path,omitempty"`
	JSONPath        string `yaml:"json_path,omitempty"`
	Title           string `yaml:"title,omitempty"`
	Language        string `yaml:"language,omitempty"`
	WordCount       int    `yaml:"word_count,omitempty"`
	SectionCount    int    `yaml:"section_count,omitempty"`
	EstimatedTokens int    `yaml:"estimated_tokens,omitempty"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalURLs        int      `yaml:"total_urls"`
	Successful       int      `yaml:"successful"`
	Failed           int      `yaml:"failed"`
	TotalTimeSeconds float64  `yaml:"total_time_seconds"`
	TotalWords       int      `yaml:"total_words"`
	TopKeywords      []string `yaml:"top_keywords,omitempty"`
}

// RunOutput is the structured output for the entire run.
type RunOutput struct {
	Status  string          `yaml:"status"`
	Results []ResultSummary `yaml:"results"`
	Stats   Stats           `yaml:"stats"`
}
