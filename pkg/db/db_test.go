package db

import (
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "simple HTTPS URL",
			url:     "https://example.com",
			wantErr: false,
		},
		{
			name:    "URL with path",
			url:     "https://example.com/path/to/page",
			wantErr: false,
		},
		{
			name:    "webmail URL",
			url:     "https://mail.google.com/mail/u/0/",
			wantErr: false,
		},
		{
			name:    "duplicate URL returns same ID",
			url:     "https://example.com",
			wantErr: false,
		},
	}

	var firstID int64
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urlID, err := db.InsertURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if urlID == 0 && !tt.wantErr {
				t.Error("InsertURL() returned 0 ID")
			}

			// First and last test use same URL, should get same ID
			if i == 0 {
				firstID = urlID
			}
			if i == len(tests)-1 && urlID != firstID {
				t.Errorf("Duplicate URL got different ID: got %d, want %d", urlID, firstID)
			}
		})
	}
}

func TestInsertURL_ParsesComponents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	testURL := "https://docs.example.com/guide/getting-started"
	urlID, err := db.InsertURL(testURL)
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	// Query the URL components
	var scheme, domain, path string
	err = db.QueryRow(`
		SELECT scheme, domain, path
		FROM urls WHERE url_id = ?
	`, urlID).Scan(&scheme, &domain, &path)
	if err != nil {
		t.Fatalf("failed to query URL: %v", err)
	}

	if scheme != "https" {
		t.Errorf("scheme = %q, want %q", scheme, "https")
	}
	if domain != "docs.example.com" {
		t.Errorf("domain = %q, want %q", domain, "docs.example.com")
	}
	if path != "/guide/getting-started" {
		t.Errorf("path = %q, want %q", path, "/guide/getting-started")
	}
}

func TestSaveAndLatestExtraction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	testURL := "https://example.com/article"
	urlID, err := db.InsertURL(testURL)
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	first := ExtractionRecord{
		Variant:      "generic",
		ContentHash:  "hash-one",
		WordCount:    120,
		SectionCount: 3,
		Language:     NewNullString("en"),
		Title:        NewNullString("An Article"),
		Prompt:       "Title: An Article\n",
	}
	if _, err := db.SaveExtraction(urlID, first); err != nil {
		t.Fatalf("SaveExtraction() failed: %v", err)
	}

	second := first
	second.ContentHash = "hash-two"
	second.WordCount = 130
	if _, err := db.SaveExtraction(urlID, second); err != nil {
		t.Fatalf("SaveExtraction() failed: %v", err)
	}

	latest, err := db.LatestExtraction(testURL)
	if err != nil {
		t.Fatalf("LatestExtraction() failed: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestExtraction() returned nil for a recorded URL")
	}
	if latest.ContentHash != "hash-two" {
		t.Errorf("latest content hash = %q, want %q", latest.ContentHash, "hash-two")
	}
	if latest.WordCount != 130 {
		t.Errorf("latest word count = %d, want 130", latest.WordCount)
	}
	if !latest.Language.Valid || latest.Language.String != "en" {
		t.Errorf("latest language = %+v, want en", latest.Language)
	}
}

func TestLatestExtraction_NoRows(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	latest, err := db.LatestExtraction("https://never-extracted.example.com")
	if err != nil {
		t.Fatalf("LatestExtraction() error = %v", err)
	}
	if latest != nil {
		t.Errorf("LatestExtraction() = %+v, want nil", latest)
	}
}

func TestInvalidateURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	testURL := "https://example.com/stale"
	urlID, err := db.InsertURL(testURL)
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	record := ExtractionRecord{
		Variant:      "generic",
		ContentHash:  "stale-hash",
		WordCount:    50,
		SectionCount: 1,
		Prompt:       "Title: Stale\n",
	}
	if _, err := db.SaveExtraction(urlID, record); err != nil {
		t.Fatalf("SaveExtraction() failed: %v", err)
	}

	if err := db.InvalidateURL(testURL); err != nil {
		t.Fatalf("InvalidateURL() failed: %v", err)
	}

	latest, err := db.LatestExtraction(testURL)
	if err != nil {
		t.Fatalf("LatestExtraction() failed: %v", err)
	}
	if latest != nil {
		t.Errorf("extraction survived invalidation: %+v", latest)
	}

	// The URL row itself stays
	gotID, err := db.InsertURL(testURL)
	if err != nil {
		t.Fatalf("InsertURL() after invalidation failed: %v", err)
	}
	if gotID != urlID {
		t.Errorf("URL ID changed after invalidation: got %d, want %d", gotID, urlID)
	}
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	urls := map[string]ExtractionRecord{
		"https://example.com/a": {
			Variant: "generic", ContentHash: "a", WordCount: 100, SectionCount: 2, Prompt: "a",
		},
		"https://example.com/b": {
			Variant: "generic", ContentHash: "b", WordCount: 200, SectionCount: 4, Prompt: "b",
		},
		"https://mail.google.com/mail/u/0/": {
			Variant: "webmail", ContentHash: "c", WordCount: 50, SectionCount: 3, Prompt: "c",
		},
	}
	for rawURL, record := range urls {
		urlID, err := db.InsertURL(rawURL)
		if err != nil {
			t.Fatalf("InsertURL(%s) failed: %v", rawURL, err)
		}
		if _, err := db.SaveExtraction(urlID, record); err != nil {
			t.Fatalf("SaveExtraction(%s) failed: %v", rawURL, err)
		}
	}

	stats, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	if stats.URLCount != 3 {
		t.Errorf("URL count = %d, want 3", stats.URLCount)
	}
	if stats.ExtractionCount != 3 {
		t.Errorf("extraction count = %d, want 3", stats.ExtractionCount)
	}
	if stats.TotalWords != 350 {
		t.Errorf("total words = %d, want 350", stats.TotalWords)
	}
	if stats.ByVariant["generic"] != 2 || stats.ByVariant["webmail"] != 1 {
		t.Errorf("variant counts = %v, want generic:2 webmail:1", stats.ByVariant)
	}
}
