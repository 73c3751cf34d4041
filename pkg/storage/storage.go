// Package storage writes extraction results to disk as prompt and JSON
// artifacts named after their source URL.
package storage

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dtnitsch/pagectx/models"
)

const DefaultBaseDir = "pagectx-results"

// Store handles persistence of extraction artifacts under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir, creating the directory if
// needed.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// getShortHash generates a short, stable hash from a URL.
func getShortHash(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	return fmt.Sprintf("%x", hash[:6]) // Use first 6 bytes for a 12-char hex string
}

// sanitizeSlug creates a filesystem-safe slug from a URL.
var invalidFilenameChar = regexp.MustCompile(`[^a-zA-Z0-9\-_]+`)

func sanitizeSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		// Fallback for invalid URLs or local files
		safe := invalidFilenameChar.ReplaceAllString(rawURL, "_")
		return strings.Trim(safe, "_")
	}

	hostPart := strings.ReplaceAll(u.Host, ".", "_")
	pathPart := strings.TrimPrefix(u.Path, "/")
	pathPart = invalidFilenameChar.ReplaceAllString(pathPart, "_")
	pathPart = strings.Trim(pathPart, "_")

	if pathPart == "" {
		return hostPart
	}
	return fmt.Sprintf("%s_%s", hostPart, pathPart)
}

// ArtifactPath constructs the full path for a URL's artifact with the given
// extension. The slug keeps names human readable, the hash keeps them unique.
func (s *Store) ArtifactPath(rawURL, ext string) string {
	filename := fmt.Sprintf("%s-%s%s", sanitizeSlug(rawURL), getShortHash(rawURL), ext)
	return filepath.Join(s.baseDir, filename)
}

// SavePrompt writes the formatted prompt for a URL and returns the file path.
func (s *Store) SavePrompt(rawURL, prompt string) (string, error) {
	filePath := s.ArtifactPath(rawURL, ".txt")
	if err := os.WriteFile(filePath, []byte(prompt), 0644); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return filePath, nil
}

// SaveJSON writes the structured extraction result for a URL and returns the
// file path.
func (s *Store) SaveJSON(rawURL string, content *models.ExtractedContent) (string, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal extraction: %w", err)
	}

	filePath := s.ArtifactPath(rawURL, ".json")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write extraction JSON: %w", err)
	}
	return filePath, nil
}
