package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"), ttl)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()

	key := Key("gpt-4o-mini", "does the changelog mention breaking changes?")

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get(empty) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Put(ctx, key, `{"verdict": true}`); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || got != `{"verdict": true}` {
		t.Errorf("Get() = %q, ok=%v", got, ok)
	}
}

func TestCachePutOverwrites(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()

	if err := c.Put(ctx, "k", "first"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, "k", "second"); err != nil {
		t.Fatal(err)
	}

	got, ok, _ := c.Get(ctx, "k")
	if !ok || got != "second" {
		t.Errorf("Get() = %q, ok=%v, want second", got, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := openTestCache(t, time.Nanosecond)
	ctx := context.Background()

	if err := c.Put(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get(expired) = ok=%v err=%v, want miss", ok, err)
	}
}

func TestCachePrune(t *testing.T) {
	c := openTestCache(t, time.Nanosecond)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Put(ctx, k, "v"); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(1100 * time.Millisecond)

	n, err := c.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Prune() = %d, want 3", n)
	}
}

func TestKeyIsStable(t *testing.T) {
	a := Key("m", "p")
	b := Key("m", "p")
	if a != b {
		t.Errorf("Key not deterministic: %q vs %q", a, b)
	}
	if Key("m", "p") == Key("m2", "p") {
		t.Error("different models collide")
	}
	// The separator keeps (model, prompt) boundaries unambiguous.
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("boundary ambiguity in key derivation")
	}
}
