package caching

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	url := "https://example.com/page"
	if _, ok := cache.Get(url); ok {
		t.Fatal("Get() on empty cache should miss")
	}

	if err := cache.Set(url, []byte("prompt text")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	data, ok := cache.Get(url)
	if !ok {
		t.Fatal("Get() after Set() should hit")
	}
	if string(data) != "prompt text" {
		t.Errorf("Get() = %q, want %q", data, "prompt text")
	}

	// A different URL must not collide.
	if _, ok := cache.Get("https://example.com/other"); ok {
		t.Error("Get() for a different URL should miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	url := "https://example.com/expiring"
	if err := cache.Set(url, []byte("stale")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, ok := cache.Get(url); ok {
		t.Error("Get() past TTL should miss")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	url := "https://example.com/navigated-away"
	if err := cache.Set(url, []byte("old page state")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if err := cache.Invalidate(url); err != nil {
		t.Fatalf("Invalidate() failed: %v", err)
	}
	if _, ok := cache.Get(url); ok {
		t.Error("Get() after Invalidate() should miss")
	}

	// Invalidating a missing entry is not an error.
	if err := cache.Invalidate("https://example.com/never-cached"); err != nil {
		t.Errorf("Invalidate() on missing entry = %v, want nil", err)
	}
}
