// Package caching provides a URL-keyed file cache for formatted prompts.
package caching

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/pagectx/internal/common"
)

// Cache stores one entry per page URL with a TTL. Navigating away from a
// page maps to Invalidate on its URL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a Cache rooted at path, creating the directory if needed.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

func (c *Cache) entryPath(url string) string {
	return filepath.Join(c.path, common.ContentHash([]byte(url)))
}

// Get retrieves the cached entry for url. It returns the data and true when
// the entry exists and has not expired.
func (c *Cache) Get(url string) ([]byte, bool) {
	entryPath := c.entryPath(url)

	info, err := os.Stat(entryPath)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data as the entry for url.
func (c *Cache) Set(url string, data []byte) error {
	if err := os.WriteFile(c.entryPath(url), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Invalidate removes the entry for url, if present.
func (c *Cache) Invalidate(url string) error {
	err := os.Remove(c.entryPath(url))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}
