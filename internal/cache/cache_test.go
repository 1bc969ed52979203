package cache

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type testSession struct {
	Token     string `json:"token"`
	ServerURL string `json:"server_url"`
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c := New(t.TempDir())
	key := "session-auth.api.rackspacecloud.com-alice"

	want := testSession{Token: "tok", ServerURL: "https://servers.api.rackspacecloud.com/v1.0/1"}
	if err := c.Set(key, want); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	var got testSession
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit, got miss")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cached value mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_ExpiredEntry(t *testing.T) {
	c := New(t.TempDir())
	key := "session"

	if err := c.Set(key, testSession{Token: "old"}); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	path := c.pathForKey(key)
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("failed to update cache mtime: %v", err)
	}

	var got testSession
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss for expired entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected expired entry to be removed")
	}
}

func TestCache_CorruptEntry(t *testing.T) {
	c := New(t.TempDir())
	key := "session"

	if err := os.WriteFile(c.pathForKey(key), []byte("{invalid json"), 0o600); err != nil {
		t.Fatalf("failed to write corrupt cache file: %v", err)
	}

	var got testSession
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss for corrupt entry")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New(t.TempDir())
	if err := c.Set("k", testSession{Token: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Invalidate("k"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := c.Invalidate("k"); err != nil {
		t.Fatalf("second Invalidate: %v", err)
	}

	var got testSession
	if hit, _ := c.Get("k", time.Hour, &got); hit {
		t.Error("expected miss after invalidate")
	}
}

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	if err := c.Set("k", 1); err != nil {
		t.Errorf("Set on nil cache: %v", err)
	}
	var v int
	if hit, err := c.Get("k", time.Hour, &v); hit || err != nil {
		t.Errorf("Get on nil cache = %v, %v", hit, err)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"":              "cache",
		"session-a.b/c": "session-a_b_c",
		"  ok_key  ":    "ok_key",
	}
	for in, want := range tests {
		if got := sanitizeKey(in); got != want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
