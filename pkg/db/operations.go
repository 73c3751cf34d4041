package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// InsertURL parses and inserts a URL, returning the url_id.
// If the URL already exists, returns the existing url_id.
func (db *DB) InsertURL(rawURL string) (int64, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}

	// Check if URL already exists
	var existingID int64
	err = db.QueryRow("SELECT url_id FROM urls WHERE original_url = ?", rawURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing URL: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO urls (original_url, scheme, domain, path)
		VALUES (?, ?, ?, ?)
	`, rawURL, parsed.Scheme, parsed.Host, parsed.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to insert URL: %w", err)
	}

	urlID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get URL ID: %w", err)
	}

	return urlID, nil
}

// ExtractionRecord represents one stored extraction run.
type ExtractionRecord struct {
	ExtractionID int64
	URLID        int64
	Variant      string
	ContentHash  string
	WordCount    int
	SectionCount int
	Language     sql.NullString
	Title        sql.NullString
	Prompt       string
	CreatedAt    time.Time
}

// SaveExtraction records an extraction run for a URL, returning the
// extraction_id.
func (db *DB) SaveExtraction(urlID int64, record ExtractionRecord) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO extractions (url_id, variant, content_hash, word_count, section_count, language, title, prompt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, urlID, record.Variant, record.ContentHash, record.WordCount,
		record.SectionCount, record.Language, record.Title, record.Prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to save extraction: %w", err)
	}

	extractionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get extraction ID: %w", err)
	}

	return extractionID, nil
}

// LatestExtraction returns the most recent extraction for a URL, or nil when
// none has been recorded.
func (db *DB) LatestExtraction(rawURL string) (*ExtractionRecord, error) {
	var record ExtractionRecord
	err := db.QueryRow(`
		SELECT e.extraction_id, e.url_id, e.variant, e.content_hash,
			e.word_count, e.section_count, e.language, e.title, e.prompt, e.created_at
		FROM extractions e
		JOIN urls u ON e.url_id = u.url_id
		WHERE u.original_url = ?
		ORDER BY e.created_at DESC, e.extraction_id DESC
		LIMIT 1
	`, rawURL).Scan(&record.ExtractionID, &record.URLID, &record.Variant,
		&record.ContentHash, &record.WordCount, &record.SectionCount,
		&record.Language, &record.Title, &record.Prompt, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest extraction: %w", err)
	}
	return &record, nil
}

// InvalidateURL deletes all stored extractions for a URL. The URL row itself
// is kept.
func (db *DB) InvalidateURL(rawURL string) error {
	_, err := db.Exec(`
		DELETE FROM extractions
		WHERE url_id IN (SELECT url_id FROM urls WHERE original_url = ?)
	`, rawURL)
	if err != nil {
		return fmt.Errorf("failed to invalidate URL: %w", err)
	}
	return nil
}

// StatsSummary aggregates stored extraction history.
type StatsSummary struct {
	URLCount        int64            `yaml:"url_count"`
	ExtractionCount int64            `yaml:"extraction_count"`
	TotalWords      int64            `yaml:"total_words"`
	ByVariant       map[string]int64 `yaml:"by_variant"`
}

// Stats summarizes the extraction history across all URLs.
func (db *DB) Stats() (*StatsSummary, error) {
	summary := &StatsSummary{ByVariant: make(map[string]int64)}

	err := db.QueryRow("SELECT COUNT(*) FROM urls").Scan(&summary.URLCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count URLs: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(word_count), 0) FROM extractions
	`).Scan(&summary.ExtractionCount, &summary.TotalWords)
	if err != nil {
		return nil, fmt.Errorf("failed to count extractions: %w", err)
	}

	rows, err := db.Query("SELECT variant, COUNT(*) FROM extractions GROUP BY variant")
	if err != nil {
		return nil, fmt.Errorf("failed to count variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var variant string
		var count int64
		if err := rows.Scan(&variant, &count); err != nil {
			return nil, fmt.Errorf("failed to scan variant count: %w", err)
		}
		summary.ByVariant[variant] = count
	}

	return summary, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
