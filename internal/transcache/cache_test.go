package transcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	key := Key{Fingerprint: "abc", Start: 1.5, End: 3.25, Model: "small", Language: "pt", Task: "transcribe"}

	if _, hit, err := cache.Get(ctx, key); err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}
	if err := cache.Put(ctx, key, "ola mundo"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	text, hit, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || text != "ola mundo" {
		t.Fatalf("Get = %q, hit=%v", text, hit)
	}

	// Same window, different task: independent entry.
	translateKey := key
	translateKey.Task = "translate"
	translateKey.Language = ""
	if _, hit, _ := cache.Get(ctx, translateKey); hit {
		t.Fatal("translate key must not alias the transcribe key")
	}
}

func TestCachePutReplaces(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	key := Key{Fingerprint: "abc", Start: 0, End: 1, Model: "small", Task: "transcribe"}
	if err := cache.Put(ctx, key, "first"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.Put(ctx, key, "second"); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	text, hit, err := cache.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if text != "second" {
		t.Errorf("text = %q, want second", text)
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var cache *Cache
	if _, hit, err := cache.Get(context.Background(), Key{}); hit || err != nil {
		t.Fatalf("nil Get: hit=%v err=%v", hit, err)
	}
	if err := cache.Put(context.Background(), Key{}, "x"); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(path, []byte("aaaa"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	first, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	// Size change must change the fingerprint.
	if err := os.WriteFile(path, []byte("aaaaaa"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	second, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if first == second {
		t.Error("fingerprint did not change with file size/mtime")
	}

	if _, err := Fingerprint(filepath.Join(dir, "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}
