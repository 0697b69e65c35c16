package cache

import (
	"testing"
	"time"
)

func TestGetSetAndExpiry(t *testing.T) {
	c := New[string]("test", 10, time.Minute)
	defer c.Close()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("a", "first")
	if v, ok := c.Get("a"); !ok || v != "first" {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry should be removed, len=%d", c.Len())
	}

	stats := c.GetStats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 2 || stats["evictions"].(int64) != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New[int]("forever", 0, 0)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("k", 42)
	now = now.Add(365 * 24 * time.Hour)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("expected value to survive, got %d %v", v, ok)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int]("lru", 2, 0)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(time.Second)
	c.Set("b", 2)
	now = now.Add(time.Second)
	c.Get("a")
	now = now.Add(time.Second)
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("expected c to be present")
	}
}

func TestKeyIsStableAndSeparatesParts(t *testing.T) {
	if Key("ab", "c") != Key("ab", "c") {
		t.Fatal("key should be deterministic")
	}
	if Key("ab", "c") == Key("a", "bc") {
		t.Fatal("part boundaries should change the key")
	}
}
