package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/pagectx/models"
)

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "host only",
			url:  "https://example.com",
			want: "example_com",
		},
		{
			name: "host and path",
			url:  "https://docs.example.com/guide/getting-started",
			want: "docs_example_com_guide_getting-started",
		},
		{
			name: "trailing slash",
			url:  "https://example.com/",
			want: "example_com",
		},
		{
			name: "invalid URL falls back to raw sanitization",
			url:  "not a url at all",
			want: "not_a_url_at_all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeSlug(tt.url); got != tt.want {
				t.Errorf("sanitizeSlug(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestArtifactPath_StableAndDistinct(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	first := store.ArtifactPath("https://example.com/a", ".txt")
	again := store.ArtifactPath("https://example.com/a", ".txt")
	other := store.ArtifactPath("https://example.com/b", ".txt")

	if first != again {
		t.Errorf("same URL produced different paths: %q vs %q", first, again)
	}
	if first == other {
		t.Errorf("different URLs collided on path %q", first)
	}
	if !strings.HasSuffix(first, ".txt") {
		t.Errorf("path %q missing extension", first)
	}
}

func TestSavePrompt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	path, err := store.SavePrompt("https://example.com/article", "Title: An Article\n")
	if err != nil {
		t.Fatalf("SavePrompt() failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("prompt saved outside base dir: %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read prompt file: %v", err)
	}
	if string(data) != "Title: An Article\n" {
		t.Errorf("prompt file = %q", data)
	}
}

func TestSaveJSON(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	content := &models.ExtractedContent{
		Metadata:    models.PageMetadata{Title: "An Article", URL: "https://example.com/article"},
		MainContent: "Body text.",
		Sections: []models.ContentSection{
			{Heading: "An Article", Content: "Body text.", Importance: 10},
		},
		WordCount: 2,
	}

	path, err := store.SaveJSON("https://example.com/article", content)
	if err != nil {
		t.Fatalf("SaveJSON() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read JSON file: %v", err)
	}

	var decoded models.ExtractedContent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode JSON file: %v", err)
	}
	if decoded.Metadata.Title != "An Article" {
		t.Errorf("decoded title = %q", decoded.Metadata.Title)
	}
	if decoded.WordCount != 2 {
		t.Errorf("decoded word count = %d, want 2", decoded.WordCount)
	}
}
