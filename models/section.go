// Package models defines the data structures shared across the extraction pipeline.
package models

// ContentSection is one scored, optionally headed chunk of extracted page text.
// Sections may describe overlapping DOM regions; the pipeline favors
// completeness over deduplication.
type ContentSection struct {
	Heading    string `json:"heading,omitempty" yaml:"heading,omitempty"`
	Content    string `json:"content" yaml:"content"`
	Importance int    `json:"importance" yaml:"importance"` // 1 (lowest) to 10 (highest)
}
